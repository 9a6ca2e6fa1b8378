package report

import (
	"bytes"
	"errors"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/example/checkin/internal/ports/secondary"
)

func sampleDump() *secondary.TableDump {
	return &secondary.TableDump{
		Table:   secondary.TableValueScrap,
		Columns: []string{"id", "name", "measurement"},
		Rows: [][]string{
			{"m1", "Copper", "Lbs."},
			{"m2", "Café, mixed", "Lbs."},
		},
	}
}

func TestCSVEncoder_UTF8(t *testing.T) {
	enc, err := NewCSVEncoder("")
	if err != nil {
		t.Fatalf("NewCSVEncoder failed: %v", err)
	}

	var buf bytes.Buffer
	if err := enc.EncodeTable(&buf, sampleDump()); err != nil {
		t.Fatalf("EncodeTable failed: %v", err)
	}

	want := "id,name,measurement\nm1,Copper,Lbs.\nm2,\"Café, mixed\",Lbs.\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}

func TestCSVEncoder_Windows1252(t *testing.T) {
	enc, err := NewCSVEncoder("windows-1252")
	if err != nil {
		t.Fatalf("NewCSVEncoder failed: %v", err)
	}

	var buf bytes.Buffer
	if err := enc.EncodeTable(&buf, sampleDump()); err != nil {
		t.Fatalf("EncodeTable failed: %v", err)
	}

	// é is the single byte 0xE9 in windows-1252.
	if !bytes.Contains(buf.Bytes(), []byte("Caf\xe9")) {
		t.Errorf("expected windows-1252 bytes, got %q", buf.String())
	}
}

// failAfterFirstWrite accepts its first Write and fails every later one.
type failAfterFirstWrite struct {
	buf    bytes.Buffer
	writes int
}

var errSinkClosed = errors.New("sink closed")

func (f *failAfterFirstWrite) Write(p []byte) (int, error) {
	f.writes++
	if f.writes > 1 {
		return 0, errSinkClosed
	}
	return f.buf.Write(p)
}

func TestCSVEncoder_Windows1252_ReportsFlushError(t *testing.T) {
	enc, err := NewCSVEncoder("windows-1252")
	if err != nil {
		t.Fatalf("NewCSVEncoder failed: %v", err)
	}

	// The csv body goes out in one write; the final flush on close fails.
	sink := &failAfterFirstWrite{}
	err = enc.EncodeTable(sink, sampleDump())
	if !errors.Is(err, errSinkClosed) {
		t.Fatalf("expected flush error, got %v", err)
	}
	if sink.buf.Len() == 0 {
		t.Error("expected the csv body to be written before the flush")
	}
}

func TestCSVEncoder_WriteError(t *testing.T) {
	enc, err := NewCSVEncoder("")
	if err != nil {
		t.Fatalf("NewCSVEncoder failed: %v", err)
	}

	sink := &failAfterFirstWrite{writes: 1}
	if err := enc.EncodeTable(sink, sampleDump()); !errors.Is(err, errSinkClosed) {
		t.Errorf("expected write error, got %v", err)
	}
}

func TestNewCSVEncoder_UnknownCharset(t *testing.T) {
	if _, err := NewCSVEncoder("ebcdic"); err == nil {
		t.Error("expected error for unknown charset")
	}
}

func TestXLSXEncoder(t *testing.T) {
	var buf bytes.Buffer
	if err := (XLSXEncoder{}).EncodeTable(&buf, sampleDump()); err != nil {
		t.Fatalf("EncodeTable failed: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("output is not a workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("value_scrap")
	if err != nil {
		t.Fatalf("GetRows failed: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(rows))
	}
	if rows[0][2] != "measurement" || rows[2][1] != "Café, mixed" {
		t.Errorf("unexpected rows %v", rows)
	}
}

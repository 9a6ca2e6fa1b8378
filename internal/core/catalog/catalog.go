// Package catalog holds the reference lists a check-in is recorded against.
// Values here are read-only snapshots; nothing in the wizard mutates them.
package catalog

// Employee is a selectable employee.
type Employee struct {
	ID   string
	Name string
}

// Company is a supplier a check-in is received from.
// Its contact fields are copied into the form when the company is selected.
type Company struct {
	ID            string
	Name          string
	Address       string
	ContactPerson string
	Email         string
	Phone         string
}

// Category is a received-goods category (e.g. "Laptops").
type Category struct {
	ID   string
	Name string
}

// Material is a value-scrap or charge material with its unit of measurement.
type Material struct {
	ID          string
	Name        string
	Measurement string
}

// Processor is one series/generation pair of the processor catalog.
type Processor struct {
	ID         string
	Series     string
	Generation string
}

// Catalogs is the per-session snapshot of every reference list.
type Catalogs struct {
	Employees           []Employee
	Companies           []Company
	Categories          []Category
	ValueScrapMaterials []Material
	ChargeMaterials     []Material
	Processors          []Processor
}

// Counts is the number of configured entries per list, used to decide
// whether a step has anything to ask.
type Counts struct {
	Employees           int
	Companies           int
	Categories          int
	ValueScrapMaterials int
	ChargeMaterials     int
	Processors          int
}

// Counts returns the size of each list.
func (c Catalogs) Counts() Counts {
	return Counts{
		Employees:           len(c.Employees),
		Companies:           len(c.Companies),
		Categories:          len(c.Categories),
		ValueScrapMaterials: len(c.ValueScrapMaterials),
		ChargeMaterials:     len(c.ChargeMaterials),
		Processors:          len(c.Processors),
	}
}

// FindCompany looks a company up by ID.
func (c Catalogs) FindCompany(id string) (Company, bool) {
	for _, co := range c.Companies {
		if co.ID == id {
			return co, true
		}
	}
	return Company{}, false
}

// FindMaterial looks a material up by ID in the given list.
func FindMaterial(list []Material, id string) (Material, bool) {
	for _, m := range list {
		if m.ID == id {
			return m, true
		}
	}
	return Material{}, false
}

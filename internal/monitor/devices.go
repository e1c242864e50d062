package monitor

// Product is one allow-listed monitor model.
type Product struct {
	ID   uint16
	Name string
}

// Vendor groups the allow-listed products of one USB vendor.
type Vendor struct {
	ID       uint16
	Name     string
	Products []Product
}

// SupportedDevices lists every monitor known to expose the brightness
// feature report this tool drives.
var SupportedDevices = []Vendor{
	{
		ID:   0x05ac,
		Name: "Apple",
		Products: []Product{
			{0x9215, `Apple Studio Display 15"`},
			{0x9217, `Apple Studio Display 17"`},
			{0x9218, `Apple Cinema Display 23"`},
			{0x9219, `Apple Cinema Display 20"`},
			{0x921e, `Apple Cinema Display 24"`},
			{0x9221, `Apple Cinema Display 30"`},
			{0x9226, `Apple Cinema HD Display 27"`},
			{0x9227, `Apple Cinema HD Display 27" 2013`},
			{0x9232, `Apple Cinema HD Display 30"`},
			{0x9236, `Apple LED Cinema Display 24"`},
		},
	},
	{
		ID:   0x0419,
		Name: "Samsung Electronics",
		Products: []Product{
			{0x8002, "Samsung SyncMaster 757NF"},
		},
	},
}

// LookupVendor returns the allow-list entry for a vendor id.
func LookupVendor(id uint16) (*Vendor, bool) {
	for i := range SupportedDevices {
		if SupportedDevices[i].ID == id {
			return &SupportedDevices[i], true
		}
	}
	return nil, false
}

// Lookup returns the vendor's entry for a product id.
func (v *Vendor) Lookup(id uint16) (*Product, bool) {
	for i := range v.Products {
		if v.Products[i].ID == id {
			return &v.Products[i], true
		}
	}
	return nil, false
}

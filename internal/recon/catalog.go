package recon

import "github.com/dealerdesk/dealerdesk-backend/pkg/types"

// ServiceOffering is one entry of the reconditioning service catalog.
type ServiceOffering struct {
	Name           string  `json:"name"`
	Category       string  `json:"category"`
	EstimatedHours float64 `json:"estimated_hours"`
}

var serviceCatalog = []ServiceOffering{
	{Name: "Full Detail", Category: "Detailing", EstimatedHours: 6},
	{Name: "Express Detail", Category: "Detailing", EstimatedHours: 3},
	{Name: "Mechanical Inspection", Category: "Mechanical", EstimatedHours: 4},
	{Name: "Engine Diagnostic", Category: "Mechanical", EstimatedHours: 2},
	{Name: "Body Work", Category: "Body", EstimatedHours: 8},
	{Name: "Paint Correction", Category: "Body", EstimatedHours: 5},
	{Name: "Interior Repair", Category: "Interior", EstimatedHours: 4},
	{Name: "Tire Service", Category: "Tires", EstimatedHours: 2},
}

var checklistTemplates = map[string][]string{
	"Full Detail": {
		"Exterior wash and dry",
		"Clay bar treatment",
		"Polish and wax",
		"Interior vacuum",
		"Interior wipe down",
		"Window cleaning",
	},
	"Mechanical Inspection": {
		"Engine oil and filter check",
		"Brake system inspection",
		"Suspension check",
		"Fluid levels top-off",
		"Battery test",
		"Road test",
	},
	"Body Work": {
		"Damage assessment",
		"Panel repair",
		"Surface preparation",
		"Primer application",
		"Paint and blend",
		"Final inspection",
	},
}

var defaultChecklist = []string{
	"Initial inspection",
	"Perform service",
	"Quality check",
	"Final sign-off",
}

// Catalog returns the reconditioning services the shop offers.
func Catalog() []ServiceOffering {
	out := make([]ServiceOffering, len(serviceCatalog))
	copy(out, serviceCatalog)
	return out
}

func findOffering(serviceType string) (ServiceOffering, bool) {
	for _, offering := range serviceCatalog {
		if offering.Name == serviceType {
			return offering, true
		}
	}
	return ServiceOffering{}, false
}

func checklistFor(serviceType string) types.Checklist {
	items, ok := checklistTemplates[serviceType]
	if !ok {
		items = defaultChecklist
	}
	checklist := make(types.Checklist, 0, len(items))
	for _, item := range items {
		checklist = append(checklist, types.ChecklistItem{Item: item})
	}
	return checklist
}

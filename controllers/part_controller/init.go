package part_controller

import (
	"github.com/anuntech/racaforte-backend-sub000/services"
)

// Dependencies are the collaborators of the part handlers. Remover and
// Enricher may be nil when the matching provider is not configured.
type Dependencies struct {
	Images        services.ImageStore
	Remover       services.BackgroundRemover
	Prices        services.PriceLooker
	Enricher      *services.PartEnrichmentService
	Labels        *services.LabelService
	StorageFolder string
}

var deps Dependencies

// Init must be called before the part routes serve traffic.
func Init(d Dependencies) {
	if d.StorageFolder == "" {
		d.StorageFolder = "racaforte/parts"
	}
	deps = d
}

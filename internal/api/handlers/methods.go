package handlers

import (
	"log"
	"net/http"

	"demand-profile/internal/api/models"
	"demand-profile/internal/config"
	"demand-profile/internal/data"

	"github.com/gin-gonic/gin"
)

// ListMethods handles GET /api/v1/methods
func ListMethods(c *gin.Context) {
	methods := []models.MethodInfo{
		{
			Name:        config.MethodNormalizedPattern,
			Description: "Maps the normalized base-year curve to monthly max/min envelopes, with hourly shape and weekend/holiday adjustments.",
			Parameters: []models.ParameterInfo{
				{
					Name:        "base_year",
					Type:        "int",
					Description: "Fiscal year to use as the base curve (0 = latest complete)",
					Default:     0,
				},
				{
					Name:        "growth_rate_default",
					Type:        "float",
					Description: "Fallback annual growth rate when history gives no usable rate",
					Default:     0.03,
				},
			},
		},
		{
			Name:        config.MethodDecomposition,
			Description: "Rebuilds demand from trend, weekly seasonal pattern and damped residual noise. Requires at least two weeks of history; falls back to normalized_pattern otherwise.",
			Parameters: []models.ParameterInfo{
				{
					Name:        "noise_seed",
					Type:        "int",
					Description: "Seed for the residual noise stream (same seed, same profile)",
					Default:     1,
				},
			},
		},
	}

	c.JSON(http.StatusOK, gin.H{"methods": methods})
}

// ListDatasets handles GET /api/v1/datasets
func ListDatasets(c *gin.Context) {
	registryPath := data.GetDefaultSourcesPath()
	list, err := data.LoadSources(registryPath)
	if err != nil {
		log.Printf("ListDatasets: no registry at %s: %v", registryPath, err)
		c.JSON(http.StatusOK, gin.H{"datasets": []models.DatasetInfo{}})
		return
	}

	datasets := make([]models.DatasetInfo, len(list.Sources))
	for i, s := range list.Sources {
		datasets[i] = models.DatasetInfo{
			ID:          s.ID,
			Name:        s.Name,
			Path:        s.Path,
			Resolution:  s.Resolution,
			Description: s.Description,
		}
	}
	c.JSON(http.StatusOK, gin.H{"datasets": datasets})
}

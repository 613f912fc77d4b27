package cmd

import (
	"fmt"
	"strings"

	"shopfloor/internal/core/domain/model/station"
)

type Config struct {
	HTTPPort             string
	DBHost               string
	DBPort               string
	DBUser               string
	DBPassword           string
	DBName               string
	DBSslMode            string
	NatsURL              string
	NatsOrderStatusTopic string
	PipelineStations     string
}

// PipelineDefinitions parses PipelineStations, a comma-separated list of
// "Station Name=Status Name" pairs in pipeline order. An empty value falls
// back to the standard woodshop pipeline.
func (c Config) PipelineDefinitions() ([]station.Definition, error) {
	if strings.TrimSpace(c.PipelineStations) == "" {
		return station.DefaultDefinitions(), nil
	}

	pairs := strings.Split(c.PipelineStations, ",")
	defs := make([]station.Definition, 0, len(pairs))
	for _, pair := range pairs {
		name, statusName, found := strings.Cut(pair, "=")
		if !found {
			return nil, fmt.Errorf("invalid pipeline station %q: expected Name=Status", pair)
		}
		defs = append(defs, station.Definition{
			Name:       strings.TrimSpace(name),
			StatusName: strings.TrimSpace(statusName),
		})
	}
	return defs, nil
}

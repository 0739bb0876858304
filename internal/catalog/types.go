// Package catalog archives generation runs and their request bodies.
package catalog

import (
	"time"

	"github.com/sanixdarker/gqlpath/pkg/querygen"
)

// Run is one archived generation.
type Run struct {
	ID         string           `json:"id"`
	Root       string           `json:"root"`
	Target     string           `json:"target"`
	Operation  string           `json:"operation"`
	SchemaHash string           `json:"schemaHash"`
	Options    querygen.Options `json:"options"`
	PathCount  int              `json:"pathCount"`
	CreatedAt  time.Time        `json:"createdAt"`
	Bodies     []Body           `json:"bodies,omitempty"`
}

// Body is a generated request body with the path label it was built for.
type Body struct {
	Index int                `json:"index"`
	Path  string             `json:"path"`
	Body  querygen.QueryBody `json:"body"`
}

// Page is a slice of runs plus the total count.
type Page struct {
	Runs     []*Run `json:"runs"`
	Total    int    `json:"total"`
	Page     int    `json:"page"`
	PageSize int    `json:"pageSize"`
}

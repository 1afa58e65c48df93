// Package catalog lists the calculators shown in the dashboard sidebar.
package catalog

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/powerman/structlog"
)

var log = structlog.New(structlog.KeyUnit, "catalog")

type Tool struct {
	Slug      string `json:"slug"`
	Name      string `json:"name"`
	Path      string `json:"path"`
	Available bool   `json:"available"`
}

var tools = []Tool{
	{Slug: "attenuation-profile", Name: "Attenuation & Pipeline Potential profile"},
	{Slug: "barnes-layer-resistivity", Name: "Barnes Layer Resistivity"},
	{Slug: "circuit-resistance", Name: "Circuit Resistance Module"},
	{Slug: "coating-factors", Name: "Coating Factors Calculation"},
	{Slug: "current-density", Name: "Current Density Calculation"},
	{Slug: "galvanic-anode", Name: "Galvanic Anode System Calculation"},
	{Slug: "groundbed-resistance", Name: "Groundbed Resistance"},
	{Slug: "impressed-current", Name: "Impressed Current System Calculation"},
	{Slug: "interference", Name: "Interference Calculation"},
	{Slug: "rectifier-ratings", Name: "Rectifier Ratings"},
	{Slug: "soil-resistivity", Name: "Soil Resistivity"},
	{Slug: "solar-sizing", Name: "Solar Sizing"},
	{Slug: "surface-area", Name: "Surface Area Calculation", Available: true},
	{Slug: "tank-mmo-sizing", Name: "Tank MMO Anode Sizing"},
	{Slug: "variable-shunt-sizing", Name: "Variable Resistor & Shunt Resistor Sizing"},
	{Slug: "voltage-gradient", Name: "Voltage Gradient"},
}

// Tools returns the catalog in sidebar order. Path is the API prefix of
// implemented tools and empty for the rest.
func Tools() []Tool {
	out := make([]Tool, len(tools))
	for i, t := range tools {
		if t.Available {
			t.Path = "/api/user/tools/" + t.Slug
		}
		out[i] = t
	}
	return out
}

func Lookup(slug string) (Tool, bool) {
	for _, t := range Tools() {
		if t.Slug == slug {
			return t, true
		}
	}
	return Tool{}, false
}

func Handler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(Tools()); err != nil {
		log.PrintErr("encode response", "err", err)
	}
}

// ToolHandler describes one tool; tools that are listed but not built yet answer 501.
func ToolHandler(w http.ResponseWriter, r *http.Request) {
	t, ok := Lookup(mux.Vars(r)["slug"])
	if !ok {
		http.Error(w, "Unknown tool", http.StatusNotFound)
		return
	}
	status := http.StatusOK
	if !t.Available {
		status = http.StatusNotImplemented
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(t); err != nil {
		log.PrintErr("encode response", "tool", t.Slug, "err", err)
	}
}

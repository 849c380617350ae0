package domain

// Dependency is one destination of the routing taxonomy: an ICETEX office
// that can be assigned a petition.
type Dependency struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// dependencies is loaded once and never mutated. Changing this list changes
// classification policy, not code: the oracle instruction payload enumerates
// it and accepted verdicts are validated against it.
var dependencies = []Dependency{
	{
		Name:        "Oficina Asesora Jurídica",
		Description: "Legal interpretation, contracts, administrative law, litigation, disciplinary processes",
	},
	{
		Name:        "Oficina Asesora de Planeación",
		Description: "Strategic planning, institutional performance, indicators, process optimization",
	},
	{
		Name:        "Oficina Asesora de Comunicaciones",
		Description: "Institutional communications, public relations, press releases, brand reputation",
	},
	{
		Name:        "Oficina de Riesgos",
		Description: "Risk management, operational risk, compliance with internal control systems",
	},
	{
		Name:        "Oficina de Control Interno",
		Description: "Audits, internal oversight, compliance, anti-corruption plans",
	},
	{
		Name:        "Oficina de Relaciones Internacionales",
		Description: "International scholarships, cooperation programs, partnerships abroad",
	},
	{
		Name:        "Oficina Comercial y de Mercadeo",
		Description: "Promotion of products, user acquisition, advertising, customer service",
	},
	{
		Name:        "Vicepresidencia de Crédito y Cobranza",
		Description: "Credit granting, collection, loan management, payment agreements",
	},
	{
		Name:        "Vicepresidencia de Operaciones y Tecnología",
		Description: "Systems management, IT infrastructure, platform maintenance",
	},
	{
		Name:        "Vicepresidencia Financiera",
		Description: "Treasury, accounting, financial management, budget control",
	},
	{
		Name:        "Vicepresidencia de Fondos en Administración",
		Description: "Management of special education funds, forgiveness (condonación) processes, verification of fund regulations",
	},
	{
		Name:        "Secretaría General",
		Description: "Contractual management, records, administrative coordination, HR, disciplinary support",
	},
}

var dependencyNames = func() map[string]struct{} {
	names := make(map[string]struct{}, len(dependencies))
	for _, dep := range dependencies {
		names[dep.Name] = struct{}{}
	}
	return names
}()

// Dependencies returns the taxonomy in declaration order. Callers receive a
// copy so the reference data stays immutable.
func Dependencies() []Dependency {
	out := make([]Dependency, len(dependencies))
	copy(out, dependencies)
	return out
}

// ValidDependency reports whether name is an exact member of the taxonomy.
func ValidDependency(name string) bool {
	_, ok := dependencyNames[name]
	return ok
}

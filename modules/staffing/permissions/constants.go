package permissions

// Casbin object names for the staffing module. Policy rows in
// config/access/policy.csv reference these verbatim.
const (
	ObjectOrganismes     = "staffing.organismes"
	ObjectPostes         = "staffing.postes"
	ObjectFonctionnaires = "staffing.fonctionnaires"
	ObjectAffectations   = "staffing.affectations"
)

const (
	ActionList         = "list"
	ActionCreate       = "create"
	ActionUpdate       = "update"
	ActionVacancies    = "vacancies"
	ActionPropositions = "propositions"
	ActionTerminate    = "terminate"
)

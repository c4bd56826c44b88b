package viewmodels

// View models are the JSON shapes exposed by the staffing API. Monetary
// amounts are rendered as strings to keep decimal precision intact.

type Organisme struct {
	Code      string `json:"code"`
	Nom       string `json:"nom"`
	Type      string `json:"type"`
	Actif     bool   `json:"actif"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type Poste struct {
	Code          string  `json:"code"`
	Titre         string  `json:"titre"`
	Niveau        int     `json:"niveau"`
	OrganismeCode string  `json:"organisme_code"`
	SalaireMin    string  `json:"salaire_min"`
	SalaireMax    string  `json:"salaire_max"`
	Occupant      *string `json:"occupant"`
	Actif         bool    `json:"actif"`
	CreatedAt     string  `json:"created_at"`
	UpdatedAt     string  `json:"updated_at"`
}

type VacantPoste struct {
	Poste
	OrganismeNom string `json:"organisme_nom"`
}

type Fonctionnaire struct {
	Matricule              string  `json:"matricule"`
	NomComplet             string  `json:"nom_complet"`
	Grade                  string  `json:"grade"`
	Email                  string  `json:"email,omitempty"`
	Telephone              string  `json:"telephone,omitempty"`
	Statut                 string  `json:"statut"`
	Priorite               string  `json:"priorite"`
	RattachementPrimaire   *string `json:"rattachement_primaire"`
	RattachementSecondaire *string `json:"rattachement_secondaire"`
	CreatedAt              string  `json:"created_at"`
	UpdatedAt              string  `json:"updated_at"`
}

type Affectation struct {
	ID               string  `json:"id"`
	PosteCode        string  `json:"poste_code"`
	Matricule        string  `json:"matricule"`
	Type             string  `json:"type"`
	Statut           string  `json:"statut"`
	PourcentageTemps int     `json:"pourcentage_temps"`
	DateDebut        string  `json:"date_debut"`
	DateFin          *string `json:"date_fin"`
	Motif            string  `json:"motif,omitempty"`
	DecidePar        string  `json:"decide_par"`
	CreatedAt        string  `json:"created_at"`
}

type CompteActif struct {
	Matricule        string `json:"matricule"`
	NomComplet       string `json:"nom_complet"`
	Grade            string `json:"grade"`
	PosteCode        string `json:"poste_code"`
	PosteTitre       string `json:"poste_titre"`
	OrganismeCode    string `json:"organisme_code"`
	PourcentageTemps int    `json:"pourcentage_temps"`
	DateDebut        string `json:"date_debut"`
}

type Proposition struct {
	Poste        Poste  `json:"poste"`
	OrganismeNom string `json:"organisme_nom"`
	Score        int    `json:"score"`
}

type PaginatedResponse[T any] struct {
	Data  []T   `json:"data"`
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
}

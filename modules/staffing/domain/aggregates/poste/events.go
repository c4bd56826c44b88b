package poste

type CreatedEvent struct {
	Result Poste
}

type ActiveToggledEvent struct {
	Code  string
	Actif bool
}

package organisme

type CreatedEvent struct {
	Result Organisme
}

type ActiveToggledEvent struct {
	Code  string
	Actif bool
}

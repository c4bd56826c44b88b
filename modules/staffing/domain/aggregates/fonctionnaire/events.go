package fonctionnaire

type CreatedEvent struct {
	Result Fonctionnaire
}

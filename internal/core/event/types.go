package event

// EntitiesReconciled is emitted after an entity pass that created or
// destroyed entities.
type EntitiesReconciled struct {
	Kept      int
	Allocated int
	Released  int
	Skipped   int
}

// PlayersReplaced is emitted after the world's player map was swapped.
type PlayersReplaced struct {
	Names []string
}

// PlayersRejected is emitted when a player update was refused because two
// entries share a name.
type PlayersRejected struct {
	Name   string
	First  int
	Second int
}

// WorldReset is emitted after a script cleared the world.
type WorldReset struct {
	Released int
}

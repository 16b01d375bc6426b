package models

// Entity is the set of catalog types served by the generic store.
type Entity interface {
	Brand | Category | Product | Image
	GetID() uint
}

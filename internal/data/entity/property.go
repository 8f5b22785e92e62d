package entity

type Property struct {
	BaseNoDelete
	Name    string `db:"name"`
	Slug    string `db:"slug"`
	Address string `db:"address"`
}

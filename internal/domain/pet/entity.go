// Package pet is read-only from the scheduler's point of view: the entity is
// loaded to resolve the owner phone at reservation time and never mutated.
package pet

type Pet struct {
	id         int64
	name       string
	species    string
	breed      string
	age        *int
	ownerName  string
	ownerPhone string
}

func Reconstruct(id int64, name, species, breed string, age *int, ownerName, ownerPhone string) *Pet {
	return &Pet{
		id:         id,
		name:       name,
		species:    species,
		breed:      breed,
		age:        age,
		ownerName:  ownerName,
		ownerPhone: ownerPhone,
	}
}

func (p *Pet) ID() int64          { return p.id }
func (p *Pet) Name() string       { return p.name }
func (p *Pet) Species() string    { return p.species }
func (p *Pet) Breed() string      { return p.breed }
func (p *Pet) Age() *int          { return p.age }
func (p *Pet) OwnerName() string  { return p.ownerName }
func (p *Pet) OwnerPhone() string { return p.ownerPhone }

package response

import "petbooking/internal/domain/pet"

type PetResponse struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Species    string `json:"species"`
	Breed      string `json:"breed,omitempty"`
	Age        *int   `json:"age,omitempty"`
	OwnerName  string `json:"ownerName"`
	OwnerPhone string `json:"ownerPhone"`
}

func FromPet(p *pet.Pet) *PetResponse {
	return &PetResponse{
		ID:         p.ID(),
		Name:       p.Name(),
		Species:    p.Species(),
		Breed:      p.Breed(),
		Age:        p.Age(),
		OwnerName:  p.OwnerName(),
		OwnerPhone: p.OwnerPhone(),
	}
}

func FromPets(list []*pet.Pet) []*PetResponse {
	result := make([]*PetResponse, len(list))
	for i, p := range list {
		result[i] = FromPet(p)
	}
	return result
}

package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPerson_Slug(t *testing.T) {
	t.Parallel()

	p := Person{FirstNameSlug: "joao", MagicToken: "aB3xY9kQ"}
	assert.Equal(t, "joao_aB3xY9kQ", p.Slug())
}

func TestPhones_Equal(t *testing.T) {
	t.Parallel()

	a, b := "111", "222"
	a2 := "111"

	tests := []struct {
		name string
		x, y Phones
		want bool
	}{
		{"both empty", Phones{}, Phones{}, true},
		{"same values different pointers", Phones{Phone1: &a}, Phones{Phone1: &a2}, true},
		{"nil vs set", Phones{Phone1: &a}, Phones{}, false},
		{"different values", Phones{Phone2: &a}, Phones{Phone2: &b}, false},
		{"third differs", Phones{Phone1: &a, Phone3: &b}, Phones{Phone1: &a}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.x.Equal(tt.y))
		})
	}
}

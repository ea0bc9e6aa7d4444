package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEquipmentService_List(t *testing.T) {
	service, _ := newTestService(t)

	items, err := service.Equipment.List(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)

	// Catalog comes back sorted by name.
	assert.Equal(t, "Microphone", items[0].Name)
	assert.Equal(t, "Projector", items[1].Name)
	assert.Equal(t, 3, items[0].TotalQuantity)
}

func TestEquipmentService_GetByID(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()

	item, err := service.Equipment.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Projector", item.Name)
	assert.Equal(t, "av", item.Category)

	_, err = service.Equipment.GetByID(ctx, 42)
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestEquipmentService_GetByName(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		query string
		found bool
	}{
		{"exact name", "Projector", true},
		{"lowercase", "projector", true},
		{"uppercase", "MICROPHONE", true},
		{"surrounding spaces", "  projector  ", true},
		{"unknown name", "Teleporter", false},
		{"partial name", "Projec", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item, err := service.Equipment.GetByName(ctx, tt.query)
			if tt.found {
				require.NoError(t, err)
				assert.NotNil(t, item)
			} else {
				assert.Equal(t, KindNotFound, KindOf(err))
			}
		})
	}
}

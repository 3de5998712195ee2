package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServiceListingProviderDefaults(t *testing.T) {
	l, err := NewServiceListing("Deep home cleaning", "Full apartment clean", "Cleaning", "Deep Clean", 499, 7, CREATED_BY_PROVIDER)
	require.NoError(t, err)

	assert.Equal(t, LISTING_STATUS_PENDING, l.OperationalStatus)
	assert.Equal(t, MODERATION_PENDING, l.ModerationStatus)
	assert.False(t, l.IsDeleted)
	assert.True(t, l.IsModerationPending())
	assert.False(t, l.IsVisible())
}

func TestNewServiceListingAdminSkipsModeration(t *testing.T) {
	l, err := NewServiceListing("Emergency plumbing", "", "Plumbing", "", 999, 0, CREATED_BY_ADMIN)
	require.NoError(t, err)

	assert.Equal(t, LISTING_STATUS_ACTIVE, l.OperationalStatus)
	assert.Equal(t, MODERATION_APPROVED, l.ModerationStatus)
	assert.False(t, l.IsModerationPending())
	assert.True(t, l.IsVisible())
}

func TestNewServiceListingValidation(t *testing.T) {
	tests := []struct {
		name      string
		title     string
		category  string
		price     float64
		createdBy string
	}{
		{"title too short", "ab", "Cleaning", 100, CREATED_BY_ADMIN},
		{"missing category", "Valid title", "", 100, CREATED_BY_ADMIN},
		{"negative price", "Valid title", "Cleaning", -1, CREATED_BY_ADMIN},
		{"unknown creator", "Valid title", "Cleaning", 100, "intern"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewServiceListing(tt.title, "", tt.category, "", tt.price, 0, tt.createdBy)
			assert.Error(t, err)
		})
	}
}

func TestServiceListingVisibility(t *testing.T) {
	l := &ServiceListing{OperationalStatus: LISTING_STATUS_ACTIVE, IsDeleted: false}
	assert.True(t, l.IsVisible())

	l.IsDeleted = true
	assert.False(t, l.IsVisible(), "deleted listings are never visible regardless of status")

	l.IsDeleted = false
	l.OperationalStatus = LISTING_STATUS_INACTIVE
	assert.False(t, l.IsVisible())
}

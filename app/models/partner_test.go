package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPartnerPasswordHashing(t *testing.T) {
	p := &Partner{}
	require.NoError(t, p.SetPassword("s3cret9"))

	assert.NotEqual(t, "s3cret9", p.Password)
	assert.True(t, p.CheckPassword("s3cret9"))
	assert.False(t, p.CheckPassword("wrong"))
}

func TestPartnerValidate(t *testing.T) {
	valid := func() *Partner {
		return &Partner{
			Username:     "r",
			Phone:        "9876543210",
			Password:     "hashed",
			Role:         ROLE_TECHNICIAN,
			BuildingName: "Prestige Towers",
			Status:       PARTNER_STATUS_ACTIVE,
		}
	}

	// a single-character username is acceptable, only empty is not
	assert.NoError(t, valid().Validate())

	p := valid()
	p.Username = ""
	assert.Error(t, p.Validate())

	p = valid()
	p.Phone = "12345"
	assert.Error(t, p.Validate())

	p = valid()
	p.Role = "manager"
	assert.Error(t, p.Validate())
}

func TestPartnerIsActive(t *testing.T) {
	p := &Partner{Status: PARTNER_STATUS_ACTIVE}
	assert.True(t, p.IsActive())

	p.Status = PARTNER_STATUS_INACTIVE
	assert.False(t, p.IsActive())
}

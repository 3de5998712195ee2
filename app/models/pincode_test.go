package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPincodeRecordAreaNames(t *testing.T) {
	r := PincodeRecord{Code: "560001", City: "Bangalore", State: "Karnataka"}
	require.NoError(t, r.SetAreaNames([]string{"MG Road", "Brigade Road"}))

	areas, err := r.AreaNames()
	require.NoError(t, err)
	assert.Equal(t, []string{"MG Road", "Brigade Road"}, areas)
}

func TestPincodeRecordEmptyAreas(t *testing.T) {
	r := PincodeRecord{}
	areas, err := r.AreaNames()
	require.NoError(t, err)
	assert.Nil(t, areas)
}

func TestPincodeRecordValidate(t *testing.T) {
	valid := PincodeRecord{Code: "560001", City: "Bangalore", State: "Karnataka"}
	assert.NoError(t, valid.Validate())

	short := PincodeRecord{Code: "5600", City: "Bangalore", State: "Karnataka"}
	assert.Error(t, short.Validate())
}

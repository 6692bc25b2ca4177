package main

import (
	"testing"

	"github.com/silverwren/gbcore/internal/types"
	"github.com/stretchr/testify/require"
)

func TestParseModel(t *testing.T) {
	cases := map[string]types.Model{
		"auto": types.Unset,
		"dmg":  types.DMGABC,
		"cgb":  types.CGBABC,
	}
	for in, want := range cases {
		got, err := parseModel(in)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
}

func TestParseModelRejectsUnknown(t *testing.T) {
	_, err := parseModel("turbografx")
	require.Error(t, err)
}

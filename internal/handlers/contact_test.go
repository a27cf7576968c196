package handlers

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestMergeContactPatchOnlySetFields(t *testing.T) {
	set := mergeContactPatch(ContactInfoPatch{
		Phone: strPtr(" +911234567890 "),
	})

	require.Len(t, set, 1)
	require.Equal(t, "+911234567890", set["phone"])

	// A later patch touching a different field must not clobber phone.
	second := mergeContactPatch(ContactInfoPatch{
		Email: strPtr("a@b.com"),
	})
	require.Len(t, second, 1)
	require.NotContains(t, second, "phone")
	require.Equal(t, "a@b.com", second["email"])
}

func TestMergeContactPatchEmpty(t *testing.T) {
	require.Empty(t, mergeContactPatch(ContactInfoPatch{}))
}

func TestMergeContactPatchAllFields(t *testing.T) {
	set := mergeContactPatch(ContactInfoPatch{
		Address:   strPtr("12 MG Road"),
		Phone:     strPtr("+911234567890"),
		Email:     strPtr("shop@example.com"),
		Instagram: strPtr("@shop"),
		Facebook:  strPtr("shop"),
		WhatsApp:  strPtr("+911234567890"),
	})
	require.Len(t, set, 6)
}

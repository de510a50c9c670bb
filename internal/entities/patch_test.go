package entities

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNullable_UnmarshalJSON(t *testing.T) {
	var payload struct {
		CountryID Nullable[uint] `json:"countryId"`
		LevelID   Nullable[uint] `json:"levelId"`
		Category  Nullable[uint] `json:"categoryId"`
	}

	err := json.Unmarshal([]byte(`{"countryId": 4, "levelId": null}`), &payload)
	require.NoError(t, err)

	assert.True(t, payload.CountryID.Set)
	require.NotNil(t, payload.CountryID.Value)
	assert.Equal(t, uint(4), *payload.CountryID.Value)

	assert.True(t, payload.LevelID.Set)
	assert.Nil(t, payload.LevelID.Value)

	assert.False(t, payload.Category.Set)
}

func TestNullable_RejectsWrongType(t *testing.T) {
	var n Nullable[uint]
	assert.Error(t, json.Unmarshal([]byte(`"abc"`), &n))
}

func TestScholarshipPatch_Columns(t *testing.T) {
	title := "New title"
	featured := false

	patch := &ScholarshipPatch{
		Title:      &title,
		IsFeatured: &featured,
		CountryID:  Null[uint](),
		LevelID:    NullableOf[uint](3),
	}

	cols := patch.Columns()
	assert.Equal(t, Columns{
		"title":       "New title",
		"is_featured": false,
		"country_id":  nil,
		"level_id":    uint(3),
	}, cols)
}

func TestPatch_EmptyHasNoColumns(t *testing.T) {
	patches := []Patch{
		&CategoryPatch{},
		&CountryPatch{},
		&LevelPatch{},
		&ScholarshipPatch{},
		&PostPatch{},
		&MenuPatch{},
		&MenuItemPatch{},
		&MediaPatch{},
		&SeoSettingPatch{},
		&SiteSettingsPatch{},
		&CoursePatch{},
		&SectionPatch{},
		&LessonPatch{},
	}
	for _, p := range patches {
		assert.Empty(t, p.Columns(), "%T", p)
	}
}

func TestSluggedPatch_SetSlug(t *testing.T) {
	name := "Graduate Studies"
	var p SluggedPatch = &CategoryPatch{Name: &name}

	assert.Nil(t, p.GetSlug())
	p.SetSlug("graduate-studies")
	require.NotNil(t, p.GetSlug())
	assert.Equal(t, "graduate-studies", p.Columns()["slug"])
}

func TestUserRole_Valid(t *testing.T) {
	assert.True(t, UserRoleAdmin.Valid())
	assert.True(t, UserRoleEditor.Valid())
	assert.True(t, UserRoleUser.Valid())
	assert.False(t, UserRole("owner").Valid())
}

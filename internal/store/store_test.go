package store

import (
	"path/filepath"
	"testing"
	"time"

	"core-nexus/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	return s
}

func TestFreshStoreSeedsVault(t *testing.T) {
	s := newTestStore(t)

	resources, err := s.Resources()
	require.NoError(t, err)
	require.Len(t, resources, 3)

	flag, err := s.ConfigValue(model.ConfigKeyVaultInitialized)
	require.NoError(t, err)
	assert.Equal(t, "true", flag)
}

func TestEmptiedVaultIsNotReseeded(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.db")

	s, err := Open(path)
	require.NoError(t, err)

	resources, err := s.Resources()
	require.NoError(t, err)
	for _, r := range resources {
		require.NoError(t, s.DeleteResource(r.ID))
	}

	// Reopen the same database: the init flag must prevent reseeding.
	s2, err := Open(path)
	require.NoError(t, err)

	resources, err = s2.Resources()
	require.NoError(t, err)
	assert.Empty(t, resources)
}

func TestAddResourceRoundtrip(t *testing.T) {
	s := newTestStore(t)

	resource := model.Resource{
		Title:       "Webhook Tester",
		Description: "Inspect outgoing webhook payloads",
		Type:        model.ResourceTypeTool,
		Content:     "https://webhook.site",
		Tags:        []string{"webhooks", "debugging"},
	}
	require.NoError(t, s.AddResource(&resource))
	require.NotEmpty(t, resource.ID)
	assert.Len(t, resource.ID, 12)

	resources, err := s.Resources()
	require.NoError(t, err)

	var got *model.Resource
	for i := range resources {
		if resources[i].ID == resource.ID {
			got = &resources[i]
		}
	}
	require.NotNil(t, got, "added resource must be readable by id")
	assert.Equal(t, resource.Title, got.Title)
	assert.Equal(t, resource.Description, got.Description)
	assert.Equal(t, resource.Type, got.Type)
	assert.Equal(t, resource.Content, got.Content)
	assert.Equal(t, resource.Tags, got.Tags)
}

func TestResourcesNewestFirst(t *testing.T) {
	s := newTestStore(t)

	resource := model.Resource{
		Title:   "Latest Addition",
		Type:    model.ResourceTypeCodeSnippet,
		Content: "fmt.Println(\"hi\")",
	}
	require.NoError(t, s.AddResource(&resource))

	resources, err := s.Resources()
	require.NoError(t, err)
	require.NotEmpty(t, resources)
	assert.Equal(t, resource.ID, resources[0].ID, "newest resource leads the list")
}

func TestResourcesTieOnTimestampKeepsInsertionOrder(t *testing.T) {
	s := newTestStore(t)

	// Same creation instant: ordering must still follow insertion.
	at := time.Now().Add(time.Hour)
	first := model.Resource{Title: "First", Type: model.ResourceTypeTool, Content: "a", CreatedAt: at}
	second := model.Resource{Title: "Second", Type: model.ResourceTypeTool, Content: "b", CreatedAt: at}
	require.NoError(t, s.AddResource(&first))
	require.NoError(t, s.AddResource(&second))

	resources, err := s.Resources()
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(resources), 2)
	assert.Equal(t, second.ID, resources[0].ID)
	assert.Equal(t, first.ID, resources[1].ID)
}

func TestDeleteResource(t *testing.T) {
	s := newTestStore(t)

	before, err := s.Resources()
	require.NoError(t, err)
	require.NotEmpty(t, before)

	require.NoError(t, s.DeleteResource(before[0].ID))

	after, err := s.Resources()
	require.NoError(t, err)
	assert.Len(t, after, len(before)-1, "delete removes exactly one entry")

	// Deleting an unknown id is a no-op, not an error.
	require.NoError(t, s.DeleteResource("nosuchidhere"))

	again, err := s.Resources()
	require.NoError(t, err)
	assert.Len(t, again, len(after))
}

func TestUpdateResource(t *testing.T) {
	s := newTestStore(t)

	resource := model.Resource{
		Title:   "Old Title",
		Type:    model.ResourceTypeTool,
		Content: "https://example.com",
	}
	require.NoError(t, s.AddResource(&resource))

	updated := resource
	updated.Title = "New Title"
	updated.Tags = []string{"updated"}
	require.NoError(t, s.UpdateResource(&updated))

	resources, err := s.Resources()
	require.NoError(t, err)
	for _, r := range resources {
		if r.ID == resource.ID {
			assert.Equal(t, "New Title", r.Title)
			assert.Equal(t, []string{"updated"}, r.Tags)
			assert.Equal(t, resource.CreatedAt.Unix(), r.CreatedAt.Unix(), "update keeps the creation time")
			return
		}
	}
	t.Fatalf("updated resource %s not found", resource.ID)
}

func TestUpdateMissingResourceFails(t *testing.T) {
	s := newTestStore(t)

	err := s.UpdateResource(&model.Resource{ID: "nosuchidhere", Title: "x", Type: model.ResourceTypeTool})
	assert.Error(t, err)
}

func TestFeedbackLifecycle(t *testing.T) {
	s := newTestStore(t)

	feedback := model.Feedback{
		Type:        model.FeedbackTypeBug,
		Message:     "The vault spinner never stops",
		ThemeAtTime: "dark",
	}
	require.NoError(t, s.AddFeedback(&feedback))

	list, err := s.Feedback()
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, feedback.Message, list[0].Message)
	assert.Equal(t, "dark", list[0].ThemeAtTime)

	require.NoError(t, s.DeleteFeedback(feedback.ID))
	list, err = s.Feedback()
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestStaffAccountPasswordHashedAtRest(t *testing.T) {
	s := newTestStore(t)

	account := model.StaffAccount{
		Username:    "ops",
		Password:    "secret1",
		Permissions: []string{model.PermissionVaultView},
	}
	require.NoError(t, s.AddStaff(&account))

	got, err := s.StaffByUsername("ops")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.NotEqual(t, "secret1", got.Password, "password must not be stored in plaintext")
	assert.Equal(t, []string{model.PermissionVaultView}, got.Permissions)

	missing, err := s.StaffByUsername("ghost")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestConfigValues(t *testing.T) {
	s := newTestStore(t)

	value, err := s.ConfigValue("never_set")
	require.NoError(t, err)
	assert.Empty(t, value)

	require.NoError(t, s.SetConfigValue(model.ConfigKeySiteURL, "https://coredevs.example"))
	value, err = s.ConfigValue(model.ConfigKeySiteURL)
	require.NoError(t, err)
	assert.Equal(t, "https://coredevs.example", value)

	require.NoError(t, s.SetConfigValue(model.ConfigKeySiteURL, "https://other.example"))
	value, err = s.ConfigValue(model.ConfigKeySiteURL)
	require.NoError(t, err)
	assert.Equal(t, "https://other.example", value)
}

func TestStatsHistory(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.AddStatsSnapshot(&model.StatsSnapshot{Resources: 3, Feedback: 1}))
	require.NoError(t, s.AddStatsSnapshot(&model.StatsSnapshot{Resources: 4, Feedback: 1}))

	snaps, err := s.StatsHistory(10)
	require.NoError(t, err)
	assert.Len(t, snaps, 2)
}

package integration

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/my0373/nbcli/internal/output"
	"github.com/my0373/nbcli/pkg/netbox"
)

// The status workflow: fetch /api/status/ and pick out the version.
func TestWorkflow_Status(t *testing.T) {
	t.Parallel()

	catalog := newFakeCatalog(t)
	client := catalog.Client(t)

	status, err := client.Status(context.Background())
	require.NoError(t, err)

	version, err := netbox.Select(status, ".netbox-version")
	require.NoError(t, err)
	assert.Equal(t, "4.4.0", version)
}

// The list workflow: follow pagination, select into the merged payload, and
// render the selection as canonical JSON.
func TestWorkflow_ListSelectRender(t *testing.T) {
	t.Parallel()

	catalog := newFakeCatalog(t)
	client := catalog.Client(t)

	devices, err := client.ListAll(context.Background(), "dcim/devices", nil)
	require.NoError(t, err)

	count, err := netbox.Select(devices, ".count")
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	name, err := netbox.Select(devices, ".results.2.name")
	require.NoError(t, err)
	assert.Equal(t, "leaf-01", name)

	var buf bytes.Buffer

	renderer := output.NewRenderer(output.FormatJSON, false)
	require.NoError(t, renderer.Render(&buf, name))
	assert.Equal(t, "\"leaf-01\"\n", buf.String())
}

// The get workflow: fetch one object by path and render it pretty.
func TestWorkflow_GetPretty(t *testing.T) {
	t.Parallel()

	catalog := newFakeCatalog(t)
	client := catalog.Client(t)

	device, err := client.GetPath(context.Background(), "dcim/devices/1", nil)
	require.NoError(t, err)

	var buf bytes.Buffer

	renderer := output.NewRenderer(output.FormatPretty, false)
	require.NoError(t, renderer.Render(&buf, device))
	assert.Equal(t, "id: 1\nname: edge-01\nstatus: active\n", buf.String())
}

// The discovery workflow: search the catalog for endpoints.
func TestWorkflow_ShowSearch(t *testing.T) {
	t.Parallel()

	catalog := newFakeCatalog(t)
	client := catalog.Client(t)

	payload, err := client.ShowPayload(context.Background(), "devices")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"endpoints": []any{"dcim/devices"}}, payload)
}

// The dump workflow: walk the catalog, serialize to YAML, write the file,
// and read it back.
func TestWorkflow_DumpFile(t *testing.T) {
	t.Parallel()

	catalog := newFakeCatalog(t)
	client := catalog.Client(t)

	payload, err := client.DumpPayload(context.Background(), false)
	require.NoError(t, err)

	data, err := output.Serialize(payload, output.FormatYAML)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "dump.yaml")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal(raw, &decoded))

	envelope, ok := decoded["netbox_data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "netbox01", envelope["hostname"])

	dump, ok := envelope["data"].(map[string]any)
	require.True(t, ok)

	core, ok := dump["core"].(map[string]any)
	require.True(t, ok)
	// Excluded by default
	assert.NotContains(t, core, "jobs")
	assert.Contains(t, core, "object-types")

	dcim, ok := dump["dcim"].(map[string]any)
	require.True(t, ok)

	racks, ok := dcim["racks"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "permission denied", racks["error"])
	assert.Equal(t, 403, racks["status"])
}

// HTTP failures carry exit code 1 end to end.
func TestWorkflow_ErrorExitCode(t *testing.T) {
	t.Parallel()

	catalog := newFakeCatalog(t)
	client := catalog.Client(t)

	_, err := client.GetPath(context.Background(), "dcim/racks", nil)
	require.Error(t, err)
	assert.Equal(t, netbox.ExitHTTPError, netbox.ExitCode(err))
}

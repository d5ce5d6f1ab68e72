// ABOUTME: Software pack exposes the lifecycle operations as MCP tools.
// ABOUTME: Requires the "software" capability.

package builtins

import (
	"context"
	"encoding/json"

	"github.com/2389/depot-gateway/internal/lifecycle"
	"github.com/2389/depot-gateway/internal/packs"
)

// SoftwarePack creates the software pack with the lifecycle tools.
func SoftwarePack(svc *lifecycle.Service) *packs.BuiltinPack {
	h := &softwareHandlers{svc: svc}
	return &packs.BuiltinPack{
		ID: "builtin:software",
		Tools: []*packs.BuiltinTool{
			{
				Definition: &packs.ToolDefinition{
					Name:                 "install_software",
					Description:          "Install a software package from the catalog",
					InputSchemaJSON:      `{"type":"object","properties":{"software_name":{"type":"string"}},"required":["software_name"]}`,
					RequiredCapabilities: []string{"software"},
				},
				Handler: h.Install,
			},
			{
				Definition: &packs.ToolDefinition{
					Name:                 "uninstall_software",
					Description:          "Uninstall an installed software package",
					InputSchemaJSON:      `{"type":"object","properties":{"software_name":{"type":"string"}},"required":["software_name"]}`,
					RequiredCapabilities: []string{"software"},
				},
				Handler: h.Uninstall,
			},
			{
				Definition: &packs.ToolDefinition{
					Name:                 "update_software",
					Description:          "Update an installed software package to its latest version",
					InputSchemaJSON:      `{"type":"object","properties":{"software_name":{"type":"string"}},"required":["software_name"]}`,
					RequiredCapabilities: []string{"software"},
				},
				Handler: h.Update,
			},
			{
				Definition: &packs.ToolDefinition{
					Name:                 "set_auto_update",
					Description:          "Enable or disable automatic updates for an installed package",
					InputSchemaJSON:      `{"type":"object","properties":{"software_name":{"type":"string"},"enabled":{"type":"boolean"}},"required":["software_name","enabled"]}`,
					RequiredCapabilities: []string{"software"},
				},
				Handler: h.SetAutoUpdate,
			},
			{
				Definition: &packs.ToolDefinition{
					Name:                 "get_software_info",
					Description:          "Get catalog and installed-state details for a software package",
					InputSchemaJSON:      `{"type":"object","properties":{"software_name":{"type":"string"}},"required":["software_name"]}`,
					RequiredCapabilities: []string{"software"},
				},
				Handler: h.GetInfo,
			},
			{
				Definition: &packs.ToolDefinition{
					Name:                 "list_installed_software",
					Description:          "List all installed software with versions",
					InputSchemaJSON:      `{"type":"object","properties":{}}`,
					RequiredCapabilities: []string{"software"},
				},
				Handler: h.ListInstalled,
			},
			{
				Definition: &packs.ToolDefinition{
					Name:                 "check_updates",
					Description:          "List installed software with a newer version in the catalog",
					InputSchemaJSON:      `{"type":"object","properties":{}}`,
					RequiredCapabilities: []string{"software"},
				},
				Handler: h.CheckUpdates,
			},
			{
				Definition: &packs.ToolDefinition{
					Name:                 "get_recommendations",
					Description:          "Get recommended software for a task such as 'web development' or 'database'",
					InputSchemaJSON:      `{"type":"object","properties":{"task":{"type":"string"}},"required":["task"]}`,
					RequiredCapabilities: []string{"software"},
				},
				Handler: h.GetRecommendations,
			},
		},
	}
}

type softwareHandlers struct {
	svc *lifecycle.Service
}

// envelope marshals a lifecycle result. The envelope itself carries failures,
// so handlers never return tool-level errors for domain conditions.
func envelope(res lifecycle.Result) (json.RawMessage, error) {
	return json.Marshal(res)
}

func invalidInput(message string) (json.RawMessage, error) {
	return envelope(lifecycle.Result{
		OK:    false,
		Error: &lifecycle.ErrorInfo{Code: lifecycle.CodeInvalidInput, Message: message},
	})
}

type softwareNameInput struct {
	SoftwareName string `json:"software_name"`
}

type setAutoUpdateInput struct {
	SoftwareName string `json:"software_name"`
	Enabled      *bool  `json:"enabled"`
}

type recommendationsInput struct {
	Task string `json:"task"`
}

func (h *softwareHandlers) Install(ctx context.Context, input json.RawMessage) (json.RawMessage, error) {
	var in softwareNameInput
	if err := json.Unmarshal(input, &in); err != nil {
		return invalidInput("invalid input: " + err.Error())
	}
	return envelope(h.svc.Install(ctx, in.SoftwareName))
}

func (h *softwareHandlers) Uninstall(ctx context.Context, input json.RawMessage) (json.RawMessage, error) {
	var in softwareNameInput
	if err := json.Unmarshal(input, &in); err != nil {
		return invalidInput("invalid input: " + err.Error())
	}
	return envelope(h.svc.Uninstall(ctx, in.SoftwareName))
}

func (h *softwareHandlers) Update(ctx context.Context, input json.RawMessage) (json.RawMessage, error) {
	var in softwareNameInput
	if err := json.Unmarshal(input, &in); err != nil {
		return invalidInput("invalid input: " + err.Error())
	}
	return envelope(h.svc.Update(ctx, in.SoftwareName))
}

func (h *softwareHandlers) SetAutoUpdate(ctx context.Context, input json.RawMessage) (json.RawMessage, error) {
	var in setAutoUpdateInput
	if err := json.Unmarshal(input, &in); err != nil {
		return invalidInput("invalid input: " + err.Error())
	}
	if in.Enabled == nil {
		return invalidInput("enabled must be provided")
	}
	return envelope(h.svc.SetAutoUpdate(ctx, in.SoftwareName, *in.Enabled))
}

func (h *softwareHandlers) GetInfo(ctx context.Context, input json.RawMessage) (json.RawMessage, error) {
	var in softwareNameInput
	if err := json.Unmarshal(input, &in); err != nil {
		return invalidInput("invalid input: " + err.Error())
	}
	return envelope(h.svc.GetSoftwareInfo(ctx, in.SoftwareName))
}

func (h *softwareHandlers) ListInstalled(ctx context.Context, input json.RawMessage) (json.RawMessage, error) {
	return envelope(h.svc.ListInstalled(ctx))
}

func (h *softwareHandlers) CheckUpdates(ctx context.Context, input json.RawMessage) (json.RawMessage, error) {
	return envelope(h.svc.CheckUpdates(ctx))
}

func (h *softwareHandlers) GetRecommendations(ctx context.Context, input json.RawMessage) (json.RawMessage, error) {
	var in recommendationsInput
	if err := json.Unmarshal(input, &in); err != nil {
		return invalidInput("invalid input: " + err.Error())
	}
	return envelope(h.svc.GetRecommendations(ctx, in.Task))
}

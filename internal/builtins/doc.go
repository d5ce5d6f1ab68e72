// Package builtins provides the built-in tool packs served over MCP.
//
// One pack is registered:
//
//	builtin:software - software lifecycle tools (requires "software" capability)
//
// The software pack exposes eight tools: install_software,
// uninstall_software, update_software, set_auto_update, get_software_info,
// list_installed_software, check_updates, get_recommendations. Each handler
// decodes its JSON input, calls the lifecycle service, and returns the
// service's result envelope verbatim, so clients always see
// {ok, data | error{code, message, hint}}.
package builtins

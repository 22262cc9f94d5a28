package constant

// ScriptTemplate is a Go text/template for scaffolding new extraction programs.
const ScriptTemplate = `{{ $divider := repeat "-" (plus (max (len .URL) (len .Name) (len .Author) 3) 12) }}{{ $divider }}
-- @name    {{ .Name }}
-- @url     {{ .URL }}
-- @author  {{ .Author }}
-- @license MIT
{{ $divider }}

-- Host API (namespace "{{ .Namespace }}"):
--   {{ .Namespace }}.{{ .GetVersionFn }}()    -> host version string
--   {{ .Namespace }}.{{ .LogFn }}(...)          -> write to the host log
--   {{ .Namespace }}.{{ .RetrieveFn }}(url)     -> response body, raises on transport failure
--   {{ .Namespace }}.{{ .InputURL }}            -> canonical identifier of the requested media
--
-- Set before returning:
--   {{ .Namespace }}.{{ .VideoURLField }}, {{ .Namespace }}.{{ .VideoNameField }}, {{ .Namespace }}.{{ .DownloadURLField }} (required)
--   {{ .Namespace }}.{{ .VideoAuthorField }} (optional)


----- MAIN -----

{{ .Namespace }}.{{ .LogFn }}("Initiating retrieval: " .. {{ .Namespace }}.{{ .InputURL }})

local page = "{{ .URL }}" .. {{ .Namespace }}.{{ .InputURL }}
local body = {{ .Namespace }}.{{ .RetrieveFn }}(page)

{{ .Namespace }}.{{ .VideoURLField }} = page
{{ .Namespace }}.{{ .VideoNameField }} = {{ .Namespace }}.{{ .InputURL }}
{{ .Namespace }}.{{ .DownloadURLField }} = page

--- END MAIN ---

-- ex: ts=4 sw=4 et filetype=lua
`

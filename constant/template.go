package constant

// Service Hook Identifiers - these constants define the global function signatures expected from Lua service scripts.
const (
	GetTitlesFn    = "GetTitles"
	GetTracksFn    = "GetTracks"
	GetChaptersFn  = "GetChapters"
	CertificateFn  = "GetWidevineServiceCertificate"
	LicenseFn      = "GetWidevineLicense"
	AuthenticateFn = "Authenticate"
)

// ServiceTemplate is a Go text/template for scaffolding new Lua service scripts.
const ServiceTemplate = `{{ $divider := repeat "-" (plus (max (len .URL) (len .Tag) (len .Author) 3) 12) }}{{ $divider }}
-- @tag     {{ .Tag }}
-- @url     {{ .URL }}
-- @author  {{ .Author }}
-- @license MIT
{{ $divider }}


---@alias title   { id: string, name: string, year: number|nil, kind: "movie"|"episode", series: string|nil, season: number|nil, number: number|nil, language: string|nil }
---@alias track   { id: string, kind: "video"|"audio"|"subtitle", url: string, codec: string|nil, bitrate: number|nil, width: number|nil, height: number|nil, language: string|nil, pssh: string|nil, kid: string|nil }
---@alias chapter { name: string, start: number }  -- start in seconds


----- IMPORTS -----
--- END IMPORTS ---



----- VARIABLES -----
--- END VARIABLES ---



----- MAIN -----

--- Lists the titles the TITLE argument resolves to.
-- @param query string The TITLE argument as given on the command line
-- @return title[] Table of titles
function {{ .GetTitlesFn }}(query)
	return {}
end


--- Lists the tracks of a title.
-- @param title title A title previously returned by {{ .GetTitlesFn }}
-- @return track[] Table of tracks
function {{ .GetTracksFn }}(title)
	return {}
end


--- Lists the chapters of a title. Optional; an empty table is valid.
-- @param title title A title previously returned by {{ .GetTitlesFn }}
-- @return chapter[] Table of chapters
function {{ .GetChaptersFn }}(title)
	return {}
end


--- Exchanges a license challenge for license bytes. Required once tracks carry DRM.
-- @param challenge string Base64-encoded license challenge
-- @param title title The title being licensed
-- @param track track The track being licensed
-- @return string Base64-encoded (or raw) license
-- function {{ .LicenseFn }}(challenge, title, track)
-- 	return ""
-- end


--- END MAIN ---




----- HELPERS -----
--- END HELPERS ---

-- ex: ts=4 sw=4 et filetype=lua
`

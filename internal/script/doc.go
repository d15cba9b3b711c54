// Package script embeds a Lua interpreter for user configuration.
//
// An init.lua in the configuration directory runs once at startup. It can
// assign option defaults and register capture hooks through the codeshot
// module:
//
//	codeshot.set("theme", "dracula")
//	codeshot.set("line_numbers", true)
//	codeshot.set("shadow_blur_radius", 2)
//
//	codeshot.on_capture(function(c)
//	    if c.mode == "edit" then
//	        return { background = "#fff" }
//	    end
//	end)
//
// Hooks run before each render with the input path, output path, capture
// mode, and resolved options. A returned table overrides options for the
// render; a hook error aborts the capture.
//
// Scripts run with io, os, debug, and package closed. Configuration code
// gets tables, strings, and math, nothing more.
package script

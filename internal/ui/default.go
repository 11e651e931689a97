package ui

import "arshapes/internal/ui/style"

// DefaultCSS styles the overlay when no stylesheet file is configured or found.
const DefaultCSS = `
#shapes { left: 16px; top: 16px; gap: 6px; }
#materials { left: 16px; top: 58px; gap: 6px; }
.chip { width: 110px; height: 36px; background: #202428d0; color: #d8d8d8; padding: 8px; font-size: 20px; }
.chip-checked { background: #3a7bd5; color: #ffffff; border: #ffffff; }
.toast { left: 50%; top: 92%; width: 640px; height: 36px; gap: 6px; background: #000000c0; color: #ffd27a; padding: 8px; }
.inspector { left: 100%; top: 12%; width: 320px; background: #181818e0; border: #505050; padding: 10px; }
.inspector-line { color: #d0d0d0; font-size: 18px; padding: 4px; }
`

// DefaultStylesheet parses DefaultCSS.
func DefaultStylesheet() *style.Stylesheet {
	return style.Parse(DefaultCSS)
}

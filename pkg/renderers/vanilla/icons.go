package vanilla

import "github.com/goliatone/go-plantillas/pkg/model"

const svgOpen = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24" width="20" height="20" fill="none" stroke="currentColor" stroke-width="2" stroke-linecap="round" stroke-linejoin="round" aria-hidden="true">`

var builtinIcons = map[model.Icon]string{
	model.IconDefault:   svgOpen + `<path d="M14 2H6a2 2 0 0 0-2 2v16a2 2 0 0 0 2 2h12a2 2 0 0 0 2-2V8z"></path><polyline points="14 2 14 8 20 8"></polyline></svg>`,
	model.IconUser:      svgOpen + `<path d="M20 21v-2a4 4 0 0 0-4-4H8a4 4 0 0 0-4 4v2"></path><circle cx="12" cy="7" r="4"></circle></svg>`,
	model.IconBuilding:  svgOpen + `<rect x="4" y="2" width="16" height="20" rx="2"></rect><line x1="9" y1="22" x2="9" y2="18"></line><line x1="15" y1="22" x2="15" y2="18"></line></svg>`,
	model.IconBriefcase: svgOpen + `<rect x="2" y="7" width="20" height="14" rx="2"></rect><path d="M16 21V5a2 2 0 0 0-2-2h-4a2 2 0 0 0-2 2v16"></path></svg>`,
	model.IconCalendar:  svgOpen + `<rect x="3" y="4" width="18" height="18" rx="2"></rect><line x1="16" y1="2" x2="16" y2="6"></line><line x1="8" y1="2" x2="8" y2="6"></line><line x1="3" y1="10" x2="21" y2="10"></line></svg>`,
	model.IconMapPin:    svgOpen + `<path d="M21 10c0 7-9 13-9 13s-9-6-9-13a9 9 0 0 1 18 0z"></path><circle cx="12" cy="10" r="3"></circle></svg>`,
	model.IconPhone:     svgOpen + `<path d="M22 16.9v3a2 2 0 0 1-2.2 2 19.8 19.8 0 0 1-8.6-3.1 19.5 19.5 0 0 1-6-6A19.8 19.8 0 0 1 2.1 4.2 2 2 0 0 1 4.1 2h3a2 2 0 0 1 2 1.7l.7 3.4a2 2 0 0 1-.6 1.9L7.9 10.3a16 16 0 0 0 6 6l1.3-1.3a2 2 0 0 1 1.9-.6l3.4.7a2 2 0 0 1 1.5 1.8z"></path></svg>`,
	model.IconMail:      svgOpen + `<rect x="2" y="4" width="20" height="16" rx="2"></rect><polyline points="22 6 12 13 2 6"></polyline></svg>`,
	model.IconHeart:     svgOpen + `<path d="M20.8 4.6a5.5 5.5 0 0 0-7.8 0L12 5.7l-1-1.1a5.5 5.5 0 0 0-7.8 7.8l8.8 8.8 8.8-8.8a5.5 5.5 0 0 0 0-7.8z"></path></svg>`,
	model.IconShield:    svgOpen + `<path d="M12 22s8-4 8-10V5l-8-3-8 3v7c0 6 8 10 8 10z"></path></svg>`,
	model.IconClipboard: svgOpen + `<path d="M16 4h2a2 2 0 0 1 2 2v14a2 2 0 0 1-2 2H6a2 2 0 0 1-2-2V6a2 2 0 0 1 2-2h2"></path><rect x="8" y="2" width="8" height="4" rx="1"></rect></svg>`,
	model.IconSettings:  svgOpen + `<circle cx="12" cy="12" r="3"></circle><path d="M12 1v4M12 19v4M4.2 4.2l2.9 2.9M16.9 16.9l2.9 2.9M1 12h4M19 12h4M4.2 19.8l2.9-2.9M16.9 7.1l2.9-2.9"></path></svg>`,
}

// IconSet resolves section icons to inline SVG.
type IconSet map[model.Icon]string

func (s IconSet) markup(icon model.Icon) string {
	if svg, ok := s[icon]; ok {
		return svg
	}
	if svg, ok := s[model.IconDefault]; ok {
		return svg
	}
	return ""
}

func defaultIconSet() IconSet {
	set := make(IconSet, len(builtinIcons))
	for icon, svg := range builtinIcons {
		set[icon] = svg
	}
	return set
}

// Package httpapi exposes plantillas, their rendered forms and the solicitudes
// submitted through them over HTTP.
//
// Routes:
//
//	GET    /healthz
//	GET    /metrics
//	GET    /plantillas?empresa=
//	POST   /plantillas
//	GET    /plantillas/{id}
//	PUT    /plantillas/{id}
//	DELETE /plantillas/{id}
//	GET    /plantillas/{id}/form
//	GET    /plantillas/{id}/schema.json
//	POST   /plantillas/{id}/solicitudes
//	GET    /solicitudes?plantilla=&empresa=&estado=&limit=
//	GET    /solicitudes/{id}
//	POST   /solicitudes/{id}/estado
//	GET    /api/catalogos/{table}
//	GET    <asset prefix>/
package httpapi

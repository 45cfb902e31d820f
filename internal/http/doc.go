// Package http provides optional HTTP adapters for the landing page core.
//
// Public routes:
//   - GET /landing/{tenant}?lang=&fallback=&theme=&variant=
//
// Admin routes mount under /admin/landing:
//   - Catalog: /catalog
//   - Sections: /{tenant}/sections, /{tenant}/sections/{id},
//     /{tenant}/sections/{id}/toggle, /{tenant}/sections/{id}/fields,
//     /{tenant}/sections/order
//
// {tenant} accepts a UUID or a restaurant slug. Host applications can
// register the handlers on their own mux.
package http

package auth

import "strings"

// Claims representa el set de claims de un token ya verificado.
// Vive lo que dura el request y se pasa por valor al handler.
type Claims struct {
	Subject     string
	Permissions []string

	// HasPermissions indica si el claim "permissions" venía en el token
	// (distinto de venir vacío).
	HasPermissions bool

	// Raw es el mapa completo decodificado del payload.
	Raw map[string]any
}

// ClaimsFromMap arma Claims a partir del payload decodificado.
// "permissions" puede venir como array JSON o como string separado por espacios.
func ClaimsFromMap(m map[string]any) Claims {
	c := Claims{Raw: m}
	if sub, ok := m["sub"].(string); ok {
		c.Subject = sub
	}

	raw, ok := m["permissions"]
	if !ok {
		return c
	}
	c.HasPermissions = true

	switch v := raw.(type) {
	case []any:
		for _, p := range v {
			if s, ok := p.(string); ok {
				c.Permissions = append(c.Permissions, s)
			}
		}
	case []string:
		c.Permissions = append(c.Permissions, v...)
	case string:
		c.Permissions = strings.Fields(v)
	}
	return c
}

// Has responde si el permiso está en el set (comparación literal).
func (c Claims) Has(permission string) bool {
	for _, p := range c.Permissions {
		if p == permission {
			return true
		}
	}
	return false
}

// KeyRecord es una entrada del JWKS publicado por el issuer.
type KeyRecord struct {
	Kid string `json:"kid"`
	Kty string `json:"kty"`
	Use string `json:"use"`
	N   string `json:"n"`
	E   string `json:"e"`
	Alg string `json:"alg,omitempty"`
}

// KeySet es el documento {keys: [...]} tal cual lo publica el issuer.
type KeySet struct {
	Keys []KeyRecord `json:"keys"`
}

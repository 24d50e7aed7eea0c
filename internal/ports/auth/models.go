package auth

// Claims es la identidad autenticada del request. UserID es el owner id
// que scopea las mascotas.
type Claims struct {
	UserID string
	Email  string
}

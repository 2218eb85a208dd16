package auth

// Credentials bundles the process-wide token secret and hashing cost.
// It has no I/O and is safe for concurrent use.
type Credentials struct {
	secret []byte
	cost   int
}

func NewCredentials(secretKey string, bcryptCost int) *Credentials {
	return &Credentials{secret: []byte(secretKey), cost: bcryptCost}
}

func (c *Credentials) Hash(password string) (string, error) {
	return HashPassword(password, c.cost)
}

func (c *Credentials) Verify(password, hash string) bool {
	return CheckPassword(password, hash)
}

// IssueToken signs a non-expiring identity token for userID.
func (c *Credentials) IssueToken(userID int64) (string, error) {
	return GenerateToken(userID, c.secret, 0)
}

// DecodeToken returns the user id carried by token, or common.ErrMissingToken /
// common.ErrInvalidToken.
func (c *Credentials) DecodeToken(token string) (int64, error) {
	return GetUserIDFromToken(token, c.secret)
}

/* auth.go
 * Contains the login endpoint
 */

package external

import (
	"context"
	"fmt"
	"net/http"

	"chess-tournament-ui/api/shared"
)

// Login exchanges credentials for a bearer token. Errors are returned as received so the caller can show the
// server's detail message unchanged
func (c *Client) Login(ctx context.Context, username string, password string) (string, error) {
	var response shared.LoginResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", nil, shared.LoginRequest{Username: username, Password: password}, &response)
	if err != nil {
		return "", err
	}
	if response.Token == "" {
		return "", fmt.Errorf("login response did not contain a token")
	}
	return response.Token, nil
}

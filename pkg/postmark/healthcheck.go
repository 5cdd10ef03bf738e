package postmark

import "context"

// Healthcheck returns a function that checks the server token is accepted.
// Compatible with health check registries that take func(context.Context) error.
func Healthcheck(c *Client) func(context.Context) error {
	return func(ctx context.Context) error {
		_, err := c.Server(ctx)
		return err
	}
}

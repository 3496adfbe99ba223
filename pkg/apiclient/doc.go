/*
Package apiclient executes requests against the EAGL REST API.

Every console surface talks to the API through a single Client so base
address resolution, JSON encoding, bearer authentication and error shaping
behave the same everywhere.

# Base address

The API base is resolved with the following precedence:

  - a base cached at runtime (Client.SetBase, usually from the runtime
    configuration document fetched at boot)
  - the environment base (EAGL_API_BASE_URL, then EAGL_API_URL)
  - http://127.0.0.1:8000 for local development

Trailing slashes are stripped and every path is placed under a single /api
segment, whether or not the caller already wrote it:

	client := apiclient.New(apiclient.WithEnvBase("https://api.example.com/"))
	client.URL("/health")     // https://api.example.com/api/health
	client.URL("/api/health") // https://api.example.com/api/health

# Errors

Non-2xx responses become *Error. Its message is the server supplied "error"
field when the body is JSON, otherwise "Erro <status>":

	var me struct{ User session.User `json:"user"` }
	err := client.Do(ctx, "/auth/me", apiclient.RequestOptions{Token: tok}, &me)
	var apiErr *apiclient.Error
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized {
		// token rejected
	}

Failures below HTTP (DNS, refused connections, timeouts) become
*TransportError so callers can tell them apart from rejections.
*/
package apiclient

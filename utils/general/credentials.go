package generalutils

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/BerryBytes/rolectl/models"
)

const (
	OutputEnv  = "env"
	OutputJSON = "json"
)

// PrintCredentials writes creds as shell export lines or as credential_process JSON.
func PrintCredentials(w io.Writer, creds *models.RoleCredentials, format string) error {
	switch format {
	case "", OutputEnv:
		_, err := fmt.Fprintf(w, "export AWS_ACCESS_KEY_ID=%s\nexport AWS_SECRET_ACCESS_KEY=%s\nexport AWS_SESSION_TOKEN=%s\n",
			creds.AccessKeyID, creds.SecretAccessKey, creds.SessionToken)
		return err
	case OutputJSON:
		out := models.CredentialProcessOutput{
			Version:         1,
			AccessKeyID:     creds.AccessKeyID,
			SecretAccessKey: creds.SecretAccessKey,
			SessionToken:    creds.SessionToken,
		}
		if !creds.Expiration.IsZero() {
			out.Expiration = creds.Expiration.UTC().Format(time.RFC3339)
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	default:
		return fmt.Errorf("unsupported output format %q (use %s or %s)", format, OutputEnv, OutputJSON)
	}
}

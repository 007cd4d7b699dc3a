package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"go.uber.org/zap"

	"github.com/themizzi/shopcheck/internal/api"
	"github.com/themizzi/shopcheck/internal/testdata"
)

// ProbeCall is one API controller call made by the probe
type ProbeCall struct {
	Name string
	Call func() (api.Envelope, error)
}

// ProbeCalls lists one call per controller operation against client. The
// account calls run in order on a throwaway user so the probe leaves
// nothing behind.
func ProbeCalls(client *api.Client, gen *testdata.Generator) []ProbeCall {
	products := api.NewProductsController(client)
	brands := api.NewBrandsController(client)
	users := api.NewUserController(client)

	user := gen.RandomUser()
	updated := user
	updated.City = "Probe City"

	return []ProbeCall{
		{"GET productsList", products.GetAllProducts},
		{"POST productsList", products.PostToProductsList},
		{"POST searchProduct", func() (api.Envelope, error) { return products.SearchProduct("top") }},
		{"POST searchProduct (no parameter)", products.SearchProductWithoutParameter},
		{"GET brandsList", brands.GetAllBrands},
		{"PUT brandsList", brands.PutToBrandsList},
		{"POST createAccount", func() (api.Envelope, error) { return users.CreateAccount(user) }},
		{"POST verifyLogin", func() (api.Envelope, error) { return users.VerifyLogin(user.Email, user.Password) }},
		{"POST verifyLogin (no email)", func() (api.Envelope, error) { return users.VerifyLoginWithoutEmail(user.Password) }},
		{"DELETE verifyLogin", users.DeleteVerifyLogin},
		{"PUT updateAccount", func() (api.Envelope, error) { return users.UpdateAccount(updated) }},
		{"GET getUserDetailByEmail", func() (api.Envelope, error) { return users.GetUserDetailByEmail(user.Email) }},
		{"DELETE deleteAccount", func() (api.Envelope, error) { return users.DeleteAccount(user.Email, user.Password) }},
	}
}

// RunProbe makes every call and writes a status table to out. A transport
// failure is reported in the table and does not stop the run; the first one
// is returned.
func RunProbe(out io.Writer, calls []ProbeCall, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CALL\tSTATUS\tRESPONSE CODE\tMESSAGE")

	var firstErr error
	for _, c := range calls {
		env, err := c.Call()
		if err != nil {
			logger.Warn("probe call failed", zap.String("call", c.Name), zap.Error(err))
			if firstErr == nil {
				firstErr = fmt.Errorf("%s: %w", c.Name, err)
			}
			fmt.Fprintf(tw, "%s\t-\t-\t%v\n", c.Name, err)
			continue
		}
		fmt.Fprintf(tw, "%s\t%d\t%d\t%s\n", c.Name, env.Status, env.ResponseCode(), env.Message())
	}

	if err := tw.Flush(); err != nil {
		return fmt.Errorf("failed to write probe table: %w", err)
	}
	return firstErr
}

package cmd

import (
	"context"

	"haulage/internal/core/application/usecases/commands"
	"haulage/internal/core/domain/model/kernel"
	"haulage/internal/core/domain/model/user"
	"haulage/internal/core/ports"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load a starter yard: materials, trucks, a customer and two users",
	Long: `Seed creates sample master data through the regular commands. Rows that
already exist are reported and skipped, so running it twice is harmless.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, log, db, err := bootstrap()
		if err != nil {
			return err
		}
		defer closeDB(db, log)

		app, err := NewCompositionRoot(cfg, db, log)
		if err != nil {
			return err
		}
		defer app.Close()

		return seed(cmd.Context(), app, log)
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

type seedMaterial struct {
	name  string
	stock int64
	unit  string
}

type seedTruck struct {
	plate    string
	capacity int64
	driver   string
}

var (
	seedMaterials = []seedMaterial{
		{name: "Coal", stock: 500, unit: "t"},
		{name: "Sand", stock: 300, unit: "t"},
		{name: "Gravel", stock: 8, unit: "t"},
	}
	seedTrucks = []seedTruck{
		{plate: "T-1", capacity: 20, driver: "A. Driver"},
		{plate: "T-2", capacity: 25, driver: "B. Driver"},
		{plate: "T-3", capacity: 30, driver: ""},
	}
	seedUsers = []struct {
		username string
		role     user.Role
	}{
		{username: "admin", role: user.RoleAdmin},
		{username: "operator", role: user.RoleOperator},
	}
)

func seed(ctx context.Context, app *CompositionRoot, log zerolog.Logger) error {
	actor := ports.SystemIdentity()

	materials := app.CreateCreateMaterialCommandHandler()
	for _, m := range seedMaterials {
		cmd, err := commands.NewCreateMaterialCommand(actor, kernel.NewUUID(), m.name, decimal.NewFromInt(m.stock), m.unit)
		if err != nil {
			return err
		}
		_, err = materials.Handle(ctx, cmd)
		report(log, "material", m.name, err)
	}

	trucks := app.CreateCreateTruckCommandHandler()
	for _, t := range seedTrucks {
		cmd, err := commands.NewCreateTruckCommand(actor, kernel.NewUUID(), t.plate, decimal.NewFromInt(t.capacity), t.driver)
		if err != nil {
			return err
		}
		_, err = trucks.Handle(ctx, cmd)
		report(log, "truck", t.plate, err)
	}

	customers := app.CreateSaveCustomerCommandHandler()
	cmd, err := commands.NewCreateCustomerCommand(actor, kernel.NewUUID(), "Acme Building Supplies", "Site office", "orders@acme.example")
	if err != nil {
		return err
	}
	_, err = customers.Handle(ctx, cmd)
	report(log, "customer", "Acme Building Supplies", err)

	users := app.CreateCreateUserCommandHandler()
	for _, u := range seedUsers {
		cmd, err := commands.NewCreateUserCommand(actor, kernel.NewUUID(), u.username, u.role)
		if err != nil {
			return err
		}
		_, err = users.Handle(ctx, cmd)
		report(log, "user", u.username, err)
	}
	return nil
}

func report(log zerolog.Logger, kind, name string, err error) {
	if err != nil {
		log.Warn().Err(err).Str("kind", kind).Str("name", name).Msg("Seed row skipped")
		return
	}
	log.Info().Str("kind", kind).Str("name", name).Msg("Seed row created")
}

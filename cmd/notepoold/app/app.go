/*
Package notepoold links together all the various components
to construct the notepool ABCI application.
*/
package notepoold

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/tss-labs/notepool"
	"github.com/tss-labs/notepool/app"
	"github.com/tss-labs/notepool/errors"
	"github.com/tss-labs/notepool/store/iavl"
	"github.com/tss-labs/notepool/x"
	"github.com/tss-labs/notepool/x/currency"
	"github.com/tss-labs/notepool/x/notes"
	"github.com/tss-labs/notepool/x/sigs"
	"github.com/tss-labs/notepool/x/utils"
	"github.com/tss-labs/notepool/x/vault"
)

// Name is returned by the abci Info call.
const Name = "notepool"

// Authenticator returns the typical authentication,
// just using public key signatures
func Authenticator() x.Authenticator {
	return x.ChainAuth(sigs.Authenticate{})
}

// Chain returns a chain of decorators, to handle authentication,
// logging, tagging and recovery
func Chain() app.Decorators {
	return app.ChainDecorators(
		utils.NewLogging(),
		utils.NewRecovery(),
		// on CheckTx, bad tx don't affect state
		utils.NewSavepoint().OnCheck(),
		sigs.NewDecorator(),
		utils.NewActionTagger(),
		// on DeliverTx, bad tx will increment the signer sequence
		// even if the message fails
		utils.NewSavepoint().OnDeliver(),
	)
}

// assetIssuer allows the vault owner to register new assets.
func assetIssuer(db notepool.ReadOnlyKVStore) (notepool.Address, error) {
	return vault.Owner(db)
}

// Router returns a router dispatching every message of the application.
func Router(authFn x.Authenticator) *app.Router {
	r := app.NewRouter()
	control := vault.NewController()
	currency.RegisterRoutes(r, authFn, assetIssuer)
	vault.RegisterRoutes(r, authFn, control)
	notes.RegisterRoutes(r, authFn, control)
	return r
}

// QueryRouter returns a default query router,
// allowing access to "/assets", "/auth", "/balances", "/allowances",
// "/escrows" and "/notes"
func QueryRouter() notepool.QueryRouter {
	r := notepool.NewQueryRouter()
	currency.RegisterQuery(r)
	sigs.RegisterQuery(r)
	vault.RegisterQuery(r)
	notes.RegisterQuery(r)
	return r
}

// Stack wires up a standard router with a standard decorator
// chain. This can be passed into BaseApp.
func Stack() notepool.Handler {
	authFn := Authenticator()
	return Chain().WithHandler(Router(authFn))
}

// Initializers returns the genesis loaders in the order they must run.
// Assets are registered before the vault credits any balance.
func Initializers() notepool.Initializer {
	return app.ChainInitializers(
		&currency.Initializer{},
		&vault.Initializer{},
	)
}

// Application constructs a basic ABCI application with
// the given arguments. If you are not sure what to use
// for the Handler, just use Stack().
func Application(name string, h notepool.Handler,
	tx notepool.TxDecoder, dbPath string, debug bool) (app.BaseApp, error) {
	kv, err := CommitKVStore(dbPath)
	if err != nil {
		return app.BaseApp{}, err
	}
	store, err := app.NewStoreApp(name, kv, QueryRouter(), context.Background())
	if err != nil {
		return app.BaseApp{}, err
	}
	store.WithInit(Initializers())
	return app.NewBaseApp(store, tx, h, debug), nil
}

// CommitKVStore returns an initialized KVStore that persists
// the data to the named path.
func CommitKVStore(dbPath string) (notepool.CommitKVStore, error) {
	// memory backed case, just for testing
	if dbPath == "" {
		return iavl.MockCommitStore(), nil
	}

	path, err := filepath.Abs(dbPath)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "invalid database name: %s", dbPath)
	}

	// some callers add a ".db", which is removed
	path = strings.TrimSuffix(path, filepath.Ext(path))

	dir := filepath.Dir(path)
	name := filepath.Base(path)
	return iavl.NewCommitStore(dir, name)
}

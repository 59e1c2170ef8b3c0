package app

import (
	"context"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tss-labs/notepool"
	"github.com/tss-labs/notepool/errors"
	"github.com/tss-labs/notepool/notetest"
	"github.com/tss-labs/notepool/store/iavl"
	"github.com/tss-labs/notepool/x/utils"
)

const chainID = "test-chain-1"

func newTestApp(t testing.TB, cs *iavl.CommitStore, init notepool.Initializer) (BaseApp, *notetest.Handler) {
	t.Helper()
	qr := notepool.NewQueryRouter()
	qr.Register("/kv", kvQuery{})

	store, err := NewStoreApp("test", cs, qr, context.Background())
	require.NoError(t, err)
	store.WithInit(init)

	writer := &notetest.Handler{
		Write:         &notepool.Model{Key: []byte("written"), Value: []byte("yes")},
		DeliverResult: notepool.DeliverResult{Data: []byte("ok")},
	}
	failing := &notetest.Handler{
		Write:      &notepool.Model{Key: []byte("partial"), Value: []byte("no")},
		DeliverErr: errors.ErrAmount,
		CheckErr:   errors.ErrAmount,
	}
	r := NewRouter()
	r.Handle("test/write", writer)
	r.Handle("test/fail", failing)

	handler := ChainDecorators(
		utils.NewLogging(),
		utils.NewRecovery(),
		utils.NewSavepoint().OnDeliver(),
	).WithHandler(r)
	return NewBaseApp(store, pathDecoder, handler, false), writer
}

func queryKey(t testing.TB, a abci.Application, key string) []byte {
	t.Helper()
	res := a.Query(abci.RequestQuery{Path: "/kv", Data: []byte(key)})
	require.Equal(t, uint32(0), res.Code, res.Log)
	var values ResultSet
	require.NoError(t, values.Unmarshal(res.Value))
	if len(values.Results) == 0 {
		return nil
	}
	return values.Results[0]
}

func TestAppLifecycle(t *testing.T) {
	Convey("Given a fresh application", t, func() {
		cs := iavl.MockCommitStore()
		c := new(countInit)
		app, writer := newTestApp(t, cs, ChainInitializers(dummyInit{}, c))
		So(app.GetChainID(), ShouldEqual, "")

		Convey("InitChain stores the chain id and runs every initializer", func() {
			app.InitChain(abci.RequestInitChain{
				ChainId:       chainID,
				AppStateBytes: []byte(`{"dummy": "secret"}`),
			})
			So(app.GetChainID(), ShouldEqual, chainID)
			So(c.called, ShouldEqual, 1)

			Convey("the chain cannot be initialized twice", func() {
				So(func() {
					app.InitChain(abci.RequestInitChain{ChainId: "other-chain", AppStateBytes: []byte(`{}`)})
				}, ShouldPanic)
			})

			Convey("genesis state is visible after the first commit", func() {
				So(queryKey(t, app, dummyKey), ShouldBeNil)
				app.Commit()
				So(string(queryKey(t, app, dummyKey)), ShouldEqual, "secret")
			})

			Convey("a block of transactions is committed", func() {
				now := time.Now().UTC()
				app.BeginBlock(abci.RequestBeginBlock{Header: abci.Header{ChainID: chainID, Height: 1, Time: now}})
				h, ok := notepool.GetHeight(app.BlockContext())
				So(ok, ShouldBeTrue)
				So(h, ShouldEqual, 1)
				bt, ok := notepool.BlockTime(app.BlockContext())
				So(ok, ShouldBeTrue)
				So(bt.Equal(now), ShouldBeTrue)

				check := app.CheckTx([]byte("test/write"))
				So(check.Code, ShouldEqual, errors.SuccessABCICode)

				res := app.DeliverTx([]byte("test/write"))
				So(res.Code, ShouldEqual, errors.SuccessABCICode)
				So(string(res.Data), ShouldEqual, "ok")

				failed := app.DeliverTx([]byte("test/fail"))
				So(failed.Code, ShouldEqual, errors.ErrAmount.ABCICode())
				So(errors.ErrAmount.Is(parseDeliver(failed)), ShouldBeTrue)

				missing := app.DeliverTx([]byte("test/missing"))
				So(missing.Code, ShouldEqual, errors.ErrNotFound.ABCICode())

				broken := app.DeliverTx([]byte("panic"))
				So(broken.Code, ShouldEqual, errors.ErrPanic.ABCICode())

				So(writer.DeliverCallCount(), ShouldEqual, 1)

				app.EndBlock(abci.RequestEndBlock{Height: 1})
				commit := app.Commit()
				So(commit.Data, ShouldNotBeEmpty)

				So(string(queryKey(t, app, "written")), ShouldEqual, "yes")
				So(queryKey(t, app, "partial"), ShouldBeNil)

				info := app.Info(abci.RequestInfo{})
				So(info.Data, ShouldEqual, "test")
				So(info.LastBlockAppHash, ShouldResemble, commit.Data)
			})
		})

		Convey("InitChain without app state fails", func() {
			So(func() { app.InitChain(abci.RequestInitChain{ChainId: chainID}) }, ShouldPanic)
			So(app.GetChainID(), ShouldEqual, "")
		})

		Convey("a failing initializer aborts the chain", func() {
			So(func() {
				app.InitChain(abci.RequestInitChain{ChainId: chainID, AppStateBytes: []byte(`{"dummy": "fail now"}`)})
			}, ShouldPanic)
			So(c.called, ShouldEqual, 0)
		})
	})
}

func parseDeliver(res abci.ResponseDeliverTx) error {
	_, err := notepool.ParseDeliverOrError(res)
	return err
}

func TestChainIDSurvivesRestart(t *testing.T) {
	cs := iavl.MockCommitStore()
	app, _ := newTestApp(t, cs, nil)
	app.InitChain(abci.RequestInitChain{ChainId: chainID, AppStateBytes: []byte(`{}`)})
	app.Commit()

	restarted, _ := newTestApp(t, cs, nil)
	assert.Equal(t, chainID, restarted.GetChainID())
	assert.Equal(t, chainID, notepool.GetChainID(restarted.BlockContext()))
	h, _ := notepool.GetHeight(restarted.BlockContext())
	assert.Equal(t, int64(1), h)
}

func TestQueryErrors(t *testing.T) {
	app, _ := newTestApp(t, iavl.MockCommitStore(), nil)

	cases := map[string]struct {
		path    string
		wantErr *errors.Error
	}{
		"unknown path": {
			path:    "/nothing",
			wantErr: errors.ErrNotFound,
		},
		"unsupported modifier": {
			path:    "/kv?prefix",
			wantErr: errors.ErrInput,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			res := app.Query(abci.RequestQuery{Path: tc.path, Data: []byte("a")})
			err := errors.ABCIError(res.Code, res.Log)
			if !tc.wantErr.Is(err) {
				t.Fatalf("want %+v error, got %+v", tc.wantErr, err)
			}
		})
	}
}

func TestSplitPath(t *testing.T) {
	path, mod := splitPath("/notes/depositor?prefix")
	assert.Equal(t, "/notes/depositor", path)
	assert.Equal(t, "prefix", mod)

	path, mod = splitPath("/notes")
	assert.Equal(t, "/notes", path)
	assert.Equal(t, "", mod)
}

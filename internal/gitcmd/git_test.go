package gitcmd

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"
)

// fakeRunner returns scripted output keyed by the joined argv and records
// every invocation.
type fakeRunner struct {
	outputs map[string]string
	errs    map[string]error
	calls   []call
}

type call struct {
	dir  string
	args string
}

func (f *fakeRunner) Run(_ context.Context, dir string, name string, args ...string) ([]byte, error) {
	key := name + " " + strings.Join(args, " ")
	f.calls = append(f.calls, call{dir: dir, args: key})
	if err, ok := f.errs[key]; ok {
		return []byte(f.outputs[key]), err
	}
	return []byte(f.outputs[key]), nil
}

func newTestClient(runner Runner) *Client {
	return NewClient(runner, zap.NewNop().Sugar())
}

func TestRemotesKeepsOnlyPushEntries(t *testing.T) {
	runner := &fakeRunner{outputs: map[string]string{
		"git remote -v": `origin	git@github.com:me/widget.git (fetch)
origin	git@github.com:me/widget.git (push)
upstream	git@github.com:acme/widget.git (fetch)
upstream	git@github.com:acme/widget.git (push)
mirror	git@github.com:elsewhere/widget.git (fetch)
`,
	}}

	remotes, err := newTestClient(runner).Remotes(context.Background(), "/repos/widget")
	if err != nil {
		t.Fatalf("Remotes: %v", err)
	}

	if len(remotes) != 2 {
		t.Fatalf("expected 2 push remotes, got %d: %v", len(remotes), remotes)
	}
	if remotes["origin"] != "git@github.com:me/widget.git" {
		t.Errorf("origin = %q", remotes["origin"])
	}
	if remotes["upstream"] != "git@github.com:acme/widget.git" {
		t.Errorf("upstream = %q", remotes["upstream"])
	}
	if _, ok := remotes["mirror"]; ok {
		t.Error("fetch-only remote must not be listed")
	}
}

func TestRemotesCommandFailure(t *testing.T) {
	runner := &fakeRunner{
		outputs: map[string]string{"git remote -v": "fatal: not a git repository"},
		errs:    map[string]error{"git remote -v": errors.New("exit status 128")},
	}

	_, err := newTestClient(runner).Remotes(context.Background(), "/repos/notrepo")
	if err == nil {
		t.Fatal("expected error for failing git remote")
	}

	var cmdErr *CommandError
	if !errors.As(err, &cmdErr) {
		t.Fatalf("expected CommandError, got %T", err)
	}
	if !strings.Contains(cmdErr.Error(), "not a git repository") {
		t.Errorf("error should carry git output, got %q", cmdErr.Error())
	}
}

func TestCurrentBranch(t *testing.T) {
	tests := []struct {
		name    string
		output  string
		want    string
		wantErr bool
	}{
		{
			name:   "master among others",
			output: "  feature/x\n* master\n  wip\n",
			want:   "master",
		},
		{
			name:   "detached head",
			output: "* (HEAD detached at 1a2b3c4)\n  master\n",
			want:   "(HEAD detached at 1a2b3c4)",
		},
		{
			name:    "no current marker",
			output:  "\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := &fakeRunner{outputs: map[string]string{"git branch": tt.output}}
			got, err := newTestClient(runner).CurrentBranch(context.Background(), "/repos/widget")
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("CurrentBranch: %v", err)
			}
			if got != tt.want {
				t.Errorf("branch = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestClientPassesExplicitWorkingDirectory(t *testing.T) {
	runner := &fakeRunner{outputs: map[string]string{}}
	client := newTestClient(runner)
	ctx := context.Background()

	_ = client.AddRemote(ctx, "/repos/widget", "upstream", "git@github.com:acme/widget.git")
	_ = client.Fetch(ctx, "/repos/widget", "upstream")
	_ = client.Rebase(ctx, "/repos/widget", "upstream/master")
	_ = client.SubmoduleUpdate(ctx, "/repos/widget")
	_ = client.ForcePushMaster(ctx, "/repos/widget")

	wantArgs := []string{
		"git remote add upstream git@github.com:acme/widget.git",
		"git fetch --prune upstream",
		"git rebase upstream/master",
		"git submodule init",
		"git submodule update",
		"git push -f origin master",
	}
	if len(runner.calls) != len(wantArgs) {
		t.Fatalf("expected %d invocations, got %d", len(wantArgs), len(runner.calls))
	}
	for i, c := range runner.calls {
		if c.dir != "/repos/widget" {
			t.Errorf("call %d ran in %q, want /repos/widget", i, c.dir)
		}
		if c.args != wantArgs[i] {
			t.Errorf("call %d = %q, want %q", i, c.args, wantArgs[i])
		}
	}
}

func TestSubmoduleUpdateStopsAfterInitFailure(t *testing.T) {
	runner := &fakeRunner{
		outputs: map[string]string{},
		errs:    map[string]error{"git submodule init": errors.New("exit status 1")},
	}

	err := newTestClient(runner).SubmoduleUpdate(context.Background(), "/repos/widget")
	if err == nil {
		t.Fatal("expected init failure to propagate")
	}
	if len(runner.calls) != 1 {
		t.Fatalf("update must not run after failed init, got calls %v", runner.calls)
	}
}

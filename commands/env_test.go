package commands

import (
	"testing"

	"github.com/josephlewis42/crsh/core/vos/vostest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnv_contents(t *testing.T) {
	cmd := vostest.Command(Env, "env")
	cmd.VOS.Setenv("C", "charlie")
	cmd.VOS.Setenv("A", "alpha")
	cmd.VOS.Setenv("B", "bravo")

	out, err := cmd.CombinedOutput()

	assert.Equal(t, 0, cmd.ExitStatus, "exit code")
	assert.Nil(t, err)
	assert.Equal(t, "A=alpha\nB=bravo\nC=charlie\nHOME=/root\nPATH=/bin:/usr/bin\n", string(out))
}

func TestEnv_explicit(t *testing.T) {
	cmd := vostest.Command(Env, "env")
	cmd.Env = []string{"ONLY=this"}

	out, err := cmd.CombinedOutput()

	assert.Nil(t, err)
	assert.Equal(t, "ONLY=this\n", string(out))
}

func TestEnv_modified(t *testing.T) {
	cases := map[string]struct {
		args   []string
		out    string
		status int
	}{
		"assign":          {args: []string{"B=2", "A=1"}, out: "A=1\nB=2\nHOME=/root\nPATH=/bin:/usr/bin\n"},
		"override":        {args: []string{"HOME=/tmp"}, out: "HOME=/tmp\nPATH=/bin:/usr/bin\n"},
		"ignore":          {args: []string{"-i", "ONLY=this"}, out: "ONLY=this\n"},
		"unset":           {args: []string{"-u", "HOME", "-u", "PATH"}, out: ""},
		"run absolute":    {args: []string{"-i", "FOO=bar", "/bin/env"}, out: "FOO=bar\n"},
		"run searched":    {args: []string{"-u", "HOME", "A=1", "env"}, out: "A=1\nPATH=/bin:/usr/bin\n"},
		"run with args":   {args: []string{"echo", "hi", "there"}, out: "hi there\n"},
		"child status":    {args: []string{"false"}, status: 1},
		"no search path":  {args: []string{"-i", "env"}, out: "env: env: not found\n", status: 127},
		"missing utility": {args: []string{"/bin/nope"}, out: "env: /bin/nope: not found\n", status: 127},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			cmd := vostest.Command(Env, "env", tc.args...)
			cmd.VOS = vostest.NewDeterministicOS(ProcessResolver)
			require.NoError(t, InstallPrograms(cmd.VOS))

			out, err := cmd.CombinedOutput()
			require.NoError(t, err)

			assert.Equal(t, tc.status, cmd.ExitStatus)
			assert.Equal(t, tc.out, string(out))
		})
	}
}

func TestPwd(t *testing.T) {
	cmd := vostest.Command(Pwd, "pwd")
	cmd.Dir = "/tmp"

	out, err := cmd.CombinedOutput()

	assert.Nil(t, err)
	assert.Equal(t, 0, cmd.ExitStatus, "exit code")
	assert.Equal(t, "/tmp\n", string(out))
}

func TestNoOp(t *testing.T) {
	cases := map[string]struct {
		proc   []string
		status int
	}{
		"true":          {[]string{"true"}, 0},
		"true-ignores":  {[]string{"true", "--bogus", "arg"}, 0},
		"false":         {[]string{"false"}, 1},
		"false-ignores": {[]string{"false", "--bogus"}, 1},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			cmd := vostest.Command(ProcessResolver("/bin/"+tc.proc[0]), tc.proc[0], tc.proc[1:]...)
			out, err := cmd.CombinedOutput()

			assert.Nil(t, err)
			assert.Empty(t, string(out))
			assert.Equal(t, tc.status, cmd.ExitStatus)
		})
	}
}

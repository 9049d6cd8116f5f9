package event

import "testing"

func TestFromEnv(t *testing.T) {
	t.Setenv("GITHUB_EVENT_NAME", "pull_request")
	t.Setenv("GITHUB_REF", "refs/pull/42/merge")
	t.Setenv("GITHUB_HEAD_REF", "feature/login")
	t.Setenv("GITHUB_BASE_REF", "main")

	ec := FromEnv()
	if ec.EventName != "pull_request" {
		t.Errorf("EventName = %q", ec.EventName)
	}
	if ec.Ref != "refs/pull/42/merge" {
		t.Errorf("Ref = %q", ec.Ref)
	}
	if ec.HeadRef != "feature/login" {
		t.Errorf("HeadRef = %q", ec.HeadRef)
	}
	if ec.BaseRef != "main" {
		t.Errorf("BaseRef = %q", ec.BaseRef)
	}
}

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		ec   Context
		want Trigger
	}{
		{
			name: "branch push",
			ec:   Context{EventName: "push", Ref: "refs/heads/main"},
			want: Trigger{Kind: TriggerPush, Name: "main"},
		},
		{
			name: "branch push with slashes",
			ec:   Context{EventName: "push", Ref: "refs/heads/release/v2"},
			want: Trigger{Kind: TriggerPush, Name: "release/v2"},
		},
		{
			name: "tag push",
			ec:   Context{EventName: "push", Ref: "refs/tags/v1.2.0"},
			want: Trigger{Kind: TriggerTag, Name: "v1.2.0"},
		},
		{
			name: "pull request",
			ec: Context{
				EventName: "pull_request",
				Ref:       "refs/pull/42/merge",
				HeadRef:   "feature/login",
				BaseRef:   "main",
			},
			want: Trigger{Kind: TriggerPullRequest, HeadRef: "feature/login", BaseRef: "main"},
		},
		{
			name: "outside CI",
			ec:   Context{},
			want: Trigger{Kind: TriggerUnknown},
		},
		{
			name: "unrecognized ref",
			ec:   Context{EventName: "workflow_dispatch", Ref: "refs/pull/7/merge"},
			want: Trigger{Kind: TriggerUnknown},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Classify(tc.ec); got != tc.want {
				t.Errorf("Classify(%+v) = %+v, want %+v", tc.ec, got, tc.want)
			}
		})
	}
}

func TestTriggerBranchName(t *testing.T) {
	cases := []struct {
		trigger Trigger
		want    string
	}{
		{Trigger{Kind: TriggerPush, Name: "main"}, "main"},
		{Trigger{Kind: TriggerTag, Name: "v1.0.0"}, "v1.0.0"},
		{Trigger{Kind: TriggerPullRequest, HeadRef: "feature/x", BaseRef: "main"}, "feature/x"},
		{Trigger{Kind: TriggerUnknown}, ""},
	}

	for _, tc := range cases {
		if got := tc.trigger.BranchName(); got != tc.want {
			t.Errorf("BranchName(%+v) = %q, want %q", tc.trigger, got, tc.want)
		}
	}
}

// Package orchestration runs series evaluations over several policy
// combinations and checks that their results agree. It decouples the runs
// from presentation via the ProgressReporter and ResultPresenter interfaces.
package orchestration

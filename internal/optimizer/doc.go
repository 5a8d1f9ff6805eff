// Package optimizer orchestrates knapsack searches.
//
// The optimizer sits between problem loading and reporting:
//
//	Problem Loading → Optimizer → Solver → Actuator
//	 (config/generator)           (solver) (actuator)
//
// Example usage:
//
//	opt, err := optimizer.NewOptimizerFromSpec(cfg.Solver, recorder)
//	if err != nil {
//	    return err
//	}
//
//	decision, err := opt.Optimize(ctx, "textbook", problem)
//	if err != nil {
//	    log.Error(err, "optimization failed")
//	    return err
//	}
//
//	log.Info("optimization complete",
//	    "problem", decision.Name,
//	    "value", decision.Result.Value,
//	    "selected", decision.Result.Solution.Selected())
//
// Optimization Flow:
//
//  1. Guard
//     - Refuse problems with more items than SolverSpec.MaxItems
//     - Stop early when the context is already done
//
//  2. Search
//     - Run the configured Solver inside a tracing span
//     - Measure wall-clock duration
//
//  3. Record
//     - Update Prometheus metrics
//     - Log the decision
//
// Independent problems can be searched concurrently with OptimizeAll; each
// search still runs on a single goroutine and shares no state with the others.
package optimizer

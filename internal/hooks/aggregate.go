// ABOUTME: Folds per-hook results into the event verdict returned to the agent loop
// ABOUTME: continue is the AND of outputs; messages keep execution order; maps merge last-wins

package hooks

// aggregate combines results in execution order. A result without output
// counts as continue=true. Empty messages are not collected.
func aggregate(event HookEvent, results []HookExecutionResult) HookEventResult {
	res := HookEventResult{
		Event:     event,
		AllPassed: true,
		Continue:  true,
		Results:   results,
	}
	for _, r := range results {
		if !r.Success {
			res.AllPassed = false
		}
		if r.Output == nil {
			continue
		}
		if !r.Output.Continue {
			res.Continue = false
		}
		if r.Output.SystemMessage != "" {
			res.SystemMessages = append(res.SystemMessages, r.Output.SystemMessage)
		}
		if r.Output.AdditionalContext != "" {
			res.AdditionalContext = append(res.AdditionalContext, r.Output.AdditionalContext)
		}
		for k, v := range r.Output.HookSpecificOutput {
			if res.HookSpecificOutput == nil {
				res.HookSpecificOutput = make(map[string]any)
			}
			res.HookSpecificOutput[k] = v
		}
	}
	return res
}

/*
Package extension is the activation context of the snippet toolbox. It owns
the catalog, the completion supplier and the mode resolver for one
activation and routes host events to them.

🔄 Lifecycle:

	New -> Activate -> (commands, configuration and focus events) -> Deactivate

📊 Sync state per activation:

	Unchecked --check--> InSync
	Unchecked --check--> OutOfSync --"Reload Now"--> InSync
	                     OutOfSync --"Ignore"-----> OutOfSync (notice not shown again)

Events are handled one at a time. An event raised while another is being
handled (for example the settings write performed by a switch) is queued and
handled after the current one returns, so a single switch reloads the host
exactly once.
*/
package extension

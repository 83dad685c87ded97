// Package commands defines the asyncpfs CLI and wires dependencies for
// subcommands.
//
// Commands
//
//   - init            Create the local identity
//   - fingerprint     Print the identity fingerprint
//   - register        Generate prekeys and publish the bundle to a directory
//   - start-session   Run the agreement as initiator and print the hello
//   - accept-session  Run the agreement as responder from a hello
//   - encrypt         Encrypt text under a stored session (base58 output)
//   - decrypt         Decrypt a base58 message
//   - session         show or clear a stored session
//
// # Implementation
//
// The root command loads the config (file, environment, then flags) and
// builds the dependency graph (stores, services, directory client) before any
// subcommand runs. It is closed again after the subcommand returns, so a bolt
// session store never outlives one invocation.
package commands

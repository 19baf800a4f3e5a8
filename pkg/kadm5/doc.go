// Package kadm5 administers an MIT Kerberos realm through the native
// kadm5 client library. It wraps the C handle in a lifecycle-safe Client,
// converts library structures into plain Go values at the boundary, and
// reports failures through a small typed error taxonomy.
//
// Connect with one of the ConnectWith* constructors:
//
//	client, err := kadm5.ConnectWithPassword("admin/admin@EXAMPLE.ORG", password)
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
//	principal, err := client.GetPrincipal("alice@EXAMPLE.ORG")
//
// A Client owns exactly one server handle and is not safe for concurrent
// use. For shared access wrap it once:
//
//	shared := kadm5.NewShared(client)
//	worker := shared.Clone()
//
// Every handle must be closed; the connection is destroyed when the last
// one is.
//
// All errors returned by this package are *Error values. Use the Is*
// helpers or errors.As to branch on the failure class. Lookups of missing
// entries are not errors: GetPrincipal and GetPolicy return (nil, nil).
package kadm5

// Package host adapts the deployment's host application database to the
// read interfaces in pkg/wiki. The deployment is expected to provide the
// host_wiki, host_subwiki, host_page, host_page_tag, and host_user_role
// views over its own schema; the adapter only ever reads them.
package host

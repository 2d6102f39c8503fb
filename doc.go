/*
Package hederalegacy drives the Hedera Legacy contracts and tokens on a Hedera
network: deploying and initialising the collection and staking contracts,
calling their functions, and running the native token lifecycle (create, mint,
associate, transfer).

Every operation is a single submission through the Hedera SDK client followed
by a receipt and/or record fetch. Sequences of operations are run through a
Session, which reports the account balance before and after and stops at the
first failure.
*/

package hederalegacy

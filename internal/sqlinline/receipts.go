package sqlinline

const QEnsureReceiptsTable = `--sql df2a0f36-0c57-4a90-b3ef-fdcbd8c36bc0
create table if not exists receipts (
    id uuid primary key,
    received_at timestamptz not null,
    payload jsonb not null
);
`

const QInsertReceipt = `--sql 8f1da6d4-0553-43d6-af64-b16ed9fa677d
insert into receipts(id, received_at, payload)
values ($1::uuid, $2::timestamptz, $3::jsonb);
`

const QListReceipts = `--sql 9ff5bcc2-61ba-4d46-b031-c92c79d23460
select id, received_at, payload
from receipts
order by received_at desc
limit $1::int;
`

const QLastReceipt = `--sql b333bb53-6263-4eec-9c8c-ac96315d06bd
select id, received_at, payload
from receipts
order by received_at desc
limit 1;
`

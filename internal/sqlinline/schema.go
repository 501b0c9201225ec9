package sqlinline

const QCreateDonorsTable = `--sql fec18115-fb2c-496e-b40d-557469e334b6
create table if not exists donors (
    id uuid primary key,
    name text not null,
    email text,
    address text not null,
    phone text not null,
    created_at timestamptz not null default now()
);
`

const QCreateDonationsTable = `--sql 69292372-136a-4fc7-b039-6c8ece1bf79b
create table if not exists donations (
    id uuid primary key,
    donor_id uuid not null references donors(id),
    date_accepted date not null,
    notes text not null default '',
    created_at timestamptz not null default now()
);
`

const QCreateDonationItemsTable = `--sql 8e8cdcd1-c3a4-49fa-8d37-ddca39092c18
create table if not exists donation_items (
    id uuid primary key,
    donation_id uuid not null references donations(id),
    description text not null,
    storage_location text not null,
    photo_url text,
    notification_sent timestamptz,
    created_at timestamptz not null default now()
);
`
